// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/execx"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/media"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"
)

// runner abstracts command execution for testing.
type runner interface {
	Run(ctx context.Context, cmd execx.Command) (*execx.Result, error)
}

// execRunner is the production runner backed by execx.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, cmd execx.Command) (*execx.Result, error) {
	return execx.Run(ctx, cmd)
}

// WeightsFilename returns the ggml weight file for a model name, e.g.
// "ggml-base.bin" for "base".
func WeightsFilename(model string) string {
	return "ggml-" + model + ".bin"
}

// WhisperCpp transcribes by shelling out to a local whisper.cpp binary.
// The binary and the model weights are resolved once at construction.
type WhisperCpp struct {
	binary    string
	modelName string
	modelPath string
	threads   int
	device    types.Device
	converter media.Converter
	run       runner
}

// NewWhisperCpp builds the local backend from the configuration. It
// fails when the binary or the model weights cannot be found, so a run
// never starts converting files it will not be able to transcribe.
func NewWhisperCpp(cfg *types.Config) (*WhisperCpp, error) {
	binary, err := resolveBinary(cfg.WhisperCpp.BinaryPath)
	if err != nil {
		return nil, err
	}

	model := cfg.Transcription.Model
	if model == "" {
		model = DefaultModel(types.BackendWhisperCpp)
	}
	if !KnownModel(types.BackendWhisperCpp, model) {
		return nil, fmt.Errorf("unknown model %q: choose one of %s", model, strings.Join(Models(types.BackendWhisperCpp), ", "))
	}

	modelPath := filepath.Join(cfg.WhisperCpp.ModelsDir, WeightsFilename(model))
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model weights not found at %s: run 'transcriber models download %s'", modelPath, model)
	}

	wav := media.NewFFmpeg(cfg.Conversion.FFmpegPath, media.TargetWAV16k)
	wav.WorkDir = cfg.Conversion.WorkDir

	return &WhisperCpp{
		binary:    binary,
		modelName: model,
		modelPath: modelPath,
		threads:   cfg.WhisperCpp.Threads,
		device:    cfg.Transcription.Device,
		converter: wav,
		run:       execRunner{},
	}, nil
}

func resolveBinary(bin string) (string, error) {
	if strings.ContainsRune(bin, os.PathSeparator) {
		if _, err := os.Stat(bin); err != nil {
			return "", fmt.Errorf("whisper.cpp binary not found at %s: %w", bin, err)
		}
		return bin, nil
	}
	path, err := execx.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("whisper.cpp binary %q not found on PATH: %w", bin, err)
	}
	return path, nil
}

func (w *WhisperCpp) Name() string { return "whispercpp" }

// Transcribe re-encodes non-wav input to 16 kHz mono PCM, runs the
// whisper.cpp binary, and reads back the text file it writes.
func (w *WhisperCpp) Transcribe(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	audio := req.AudioPath
	if !strings.EqualFold(filepath.Ext(audio), ".wav") {
		converted, err := w.converter.Convert(ctx, audio)
		if err != nil {
			return nil, fmt.Errorf("preparing audio: %w", err)
		}
		audio = converted
	}

	outDir, err := os.MkdirTemp("", "transcriber-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(outDir)
	prefix := filepath.Join(outDir, "transcript")

	lang := req.Language
	if lang == "" {
		lang = "auto"
	}

	args := []string{
		"-m", w.modelPath,
		"-f", audio,
		"-otxt",
		"-l", lang,
		"-t", strconv.Itoa(w.threads),
		"--output-file", prefix,
	}
	if req.Prompt != "" {
		args = append(args, "--prompt", req.Prompt)
	}
	if w.device == types.DeviceCPU {
		args = append(args, "-ng")
	}

	cmd := execx.Command{Binary: w.binary, Args: args, GracePeriod: 5 * time.Second}
	if _, err := w.run.Run(ctx, cmd); err != nil {
		return nil, fmt.Errorf("whisper.cpp: %w", err)
	}

	data, err := os.ReadFile(prefix + ".txt")
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, errors.New("whisper.cpp produced an empty transcript")
	}

	return &Result{Text: text, Model: w.modelName, Duration: time.Since(start)}, nil
}
