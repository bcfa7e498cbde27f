// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/execx"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"
)

// fakeRunner records commands and simulates the whisper binary writing
// its transcript file.
type fakeRunner struct {
	calls      []execx.Command
	err        error
	transcript string
}

func (f *fakeRunner) Run(_ context.Context, cmd execx.Command) (*execx.Result, error) {
	f.calls = append(f.calls, cmd)
	if f.err != nil {
		return nil, f.err
	}
	if prefix := argAfter(cmd.Args, "--output-file"); prefix != "" {
		if err := os.WriteFile(prefix+".txt", []byte(f.transcript), 0o644); err != nil {
			return nil, err
		}
	}
	return &execx.Result{}, nil
}

// fakeConverter implements media.Converter without running ffmpeg.
type fakeConverter struct {
	out   string
	err   error
	calls int
}

func (f *fakeConverter) Convert(_ context.Context, src string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.out != "" {
		return f.out, nil
	}
	return src, nil
}

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasArg(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func newTestWhisperCpp(run *fakeRunner, conv *fakeConverter) *WhisperCpp {
	return &WhisperCpp{
		binary:    "/opt/whisper/whisper-cli",
		modelName: "base",
		modelPath: "/opt/whisper/models/ggml-base.bin",
		threads:   4,
		device:    types.DeviceGPU,
		converter: conv,
		run:       run,
	}
}

func TestWhisperCppTranscribe(t *testing.T) {
	run := &fakeRunner{transcript: "  hello from the audio \n"}
	conv := &fakeConverter{}
	w := newTestWhisperCpp(run, conv)

	wav := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(wav, []byte("x"), 0o644))

	result, err := w.Transcribe(context.Background(), Request{AudioPath: wav, Language: "it"})
	require.NoError(t, err)

	assert.Equal(t, "hello from the audio", result.Text)
	assert.Equal(t, "base", result.Model)
	assert.Equal(t, 0, conv.calls, "wav input must not be re-encoded")

	require.Len(t, run.calls, 1)
	args := run.calls[0].Args
	assert.Equal(t, "/opt/whisper/models/ggml-base.bin", argAfter(args, "-m"))
	assert.Equal(t, wav, argAfter(args, "-f"))
	assert.Equal(t, "it", argAfter(args, "-l"))
	assert.Equal(t, "4", argAfter(args, "-t"))
	assert.True(t, hasArg(args, "-otxt"))
	assert.False(t, hasArg(args, "-ng"))
	assert.False(t, hasArg(args, "--prompt"))
}

func TestWhisperCppConvertsNonWavInput(t *testing.T) {
	dir := t.TempDir()
	mp3 := filepath.Join(dir, "clip.mp3")
	wav := filepath.Join(dir, "clip.wav")
	require.NoError(t, os.WriteFile(mp3, []byte("x"), 0o644))

	run := &fakeRunner{transcript: "ciao"}
	conv := &fakeConverter{out: wav}
	w := newTestWhisperCpp(run, conv)

	_, err := w.Transcribe(context.Background(), Request{AudioPath: mp3})
	require.NoError(t, err)

	assert.Equal(t, 1, conv.calls)
	assert.Equal(t, wav, argAfter(run.calls[0].Args, "-f"))
	// No language requested: the binary is told to detect it.
	assert.Equal(t, "auto", argAfter(run.calls[0].Args, "-l"))
}

func TestWhisperCppCPUDisablesGPU(t *testing.T) {
	run := &fakeRunner{transcript: "ok"}
	w := newTestWhisperCpp(run, &fakeConverter{})
	w.device = types.DeviceCPU

	wav := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(wav, []byte("x"), 0o644))

	_, err := w.Transcribe(context.Background(), Request{AudioPath: wav})
	require.NoError(t, err)
	assert.True(t, hasArg(run.calls[0].Args, "-ng"))
}

func TestWhisperCppPassesPrompt(t *testing.T) {
	run := &fakeRunner{transcript: "ok"}
	w := newTestWhisperCpp(run, &fakeConverter{})

	wav := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(wav, []byte("x"), 0o644))

	_, err := w.Transcribe(context.Background(), Request{AudioPath: wav, Prompt: "Jargon: kubelet."})
	require.NoError(t, err)
	assert.Equal(t, "Jargon: kubelet.", argAfter(run.calls[0].Args, "--prompt"))
}

func TestWhisperCppEmptyTranscript(t *testing.T) {
	run := &fakeRunner{transcript: "   \n"}
	w := newTestWhisperCpp(run, &fakeConverter{})

	wav := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(wav, []byte("x"), 0o644))

	_, err := w.Transcribe(context.Background(), Request{AudioPath: wav})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty transcript")
}

func TestWhisperCppBinaryFailure(t *testing.T) {
	run := &fakeRunner{err: errors.New("exit code 1")}
	w := newTestWhisperCpp(run, &fakeConverter{})

	wav := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(wav, []byte("x"), 0o644))

	_, err := w.Transcribe(context.Background(), Request{AudioPath: wav})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whisper.cpp")
}

func TestWhisperCppConversionFailure(t *testing.T) {
	run := &fakeRunner{transcript: "ok"}
	conv := &fakeConverter{err: errors.New("no audio stream")}
	w := newTestWhisperCpp(run, conv)

	_, err := w.Transcribe(context.Background(), Request{AudioPath: "clip.mkv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preparing audio")
	assert.Empty(t, run.calls)
}

func TestNewWhisperCppValidation(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "whisper-cli")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\n"), 0o755))
	modelsDir := filepath.Join(dir, "models")
	require.NoError(t, os.MkdirAll(modelsDir, 0o755))

	cfg := &types.Config{}
	cfg.Transcription.Backend = types.BackendWhisperCpp
	cfg.Transcription.Model = "base"
	cfg.WhisperCpp.BinaryPath = binary
	cfg.WhisperCpp.ModelsDir = modelsDir
	cfg.WhisperCpp.Threads = 4

	// Weights missing.
	_, err := NewWhisperCpp(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model weights not found")
	assert.Contains(t, err.Error(), "models download base")

	// Weights present.
	require.NoError(t, os.WriteFile(filepath.Join(modelsDir, "ggml-base.bin"), []byte("weights"), 0o644))
	w, err := NewWhisperCpp(cfg)
	require.NoError(t, err)
	assert.Equal(t, "base", w.modelName)
	assert.Equal(t, "whispercpp", w.Name())

	// Unknown model name.
	cfg.Transcription.Model = "enormous-v9"
	_, err = NewWhisperCpp(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model")

	// Missing binary.
	cfg.Transcription.Model = "base"
	cfg.WhisperCpp.BinaryPath = filepath.Join(dir, "missing-cli")
	_, err = NewWhisperCpp(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
