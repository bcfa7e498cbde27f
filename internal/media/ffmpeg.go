// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/execx"
)

// Target selects the output encoding of a conversion.
type Target string

const (
	// TargetMP3 extracts the audio track as high-quality MP3. This is the
	// format handed to the cloud transcription backends.
	TargetMP3 Target = "mp3"
	// TargetWAV16k produces 16 kHz mono PCM, the input format the local
	// whisper.cpp binary expects.
	TargetWAV16k Target = "wav"
)

// Converter turns a media file into a format a transcription backend can
// ingest, returning the path of the produced artifact.
type Converter interface {
	Convert(ctx context.Context, src string) (string, error)
}

// runner abstracts command execution for testing.
type runner interface {
	Run(ctx context.Context, cmd execx.Command) (*execx.Result, error)
	LookPath(file string) (string, error)
}

// execRunner is the production runner backed by execx.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, cmd execx.Command) (*execx.Result, error) {
	return execx.Run(ctx, cmd)
}

func (execRunner) LookPath(file string) (string, error) {
	return execx.LookPath(file)
}

// FFmpeg converts media files by shelling out to the ffmpeg binary.
type FFmpeg struct {
	// Binary is the ffmpeg executable, either a bare name resolved via
	// PATH or an absolute path from configuration.
	Binary string

	// Target selects the output encoding.
	Target Target

	// WorkDir, when set, receives the converted artifacts. When empty the
	// artifact is written beside the source file so a later run can reuse
	// it without converting again.
	WorkDir string

	run runner
}

// NewFFmpeg returns a converter using the given binary and target format.
func NewFFmpeg(binary string, target Target) *FFmpeg {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{Binary: binary, Target: target, run: execRunner{}}
}

// Detect verifies the ffmpeg binary is reachable and returns its resolved
// path. Bare names are looked up on PATH; explicit paths are checked on
// disk.
func (f *FFmpeg) Detect() (string, error) {
	run := f.run
	if run == nil {
		run = execRunner{}
	}
	if strings.ContainsRune(f.Binary, os.PathSeparator) {
		if _, err := os.Stat(f.Binary); err != nil {
			return "", fmt.Errorf("ffmpeg not found at %s: %w", f.Binary, err)
		}
		return f.Binary, nil
	}
	path, err := run.LookPath(f.Binary)
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found on PATH: %w", err)
	}
	return path, nil
}

// DestPath returns where Convert would write the artifact for src: the
// source basename with the target extension, in WorkDir when set or
// beside the source otherwise.
func (f *FFmpeg) DestPath(src string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	dir := f.WorkDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	return filepath.Join(dir, base+"."+string(f.Target))
}

// Convert produces the target-format rendition of src and returns its
// path. An artifact that already exists is reused without re-encoding, so
// interrupted runs pick up where they left off.
func (f *FFmpeg) Convert(ctx context.Context, src string) (string, error) {
	run := f.run
	if run == nil {
		run = execRunner{}
	}

	dst := f.DestPath(src)
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}

	if f.WorkDir != "" {
		if err := os.MkdirAll(f.WorkDir, 0o755); err != nil {
			return "", fmt.Errorf("creating conversion dir: %w", err)
		}
	}

	var args []string
	switch f.Target {
	case TargetWAV16k:
		args = []string{"-i", src, "-vn", "-ar", "16000", "-ac", "1", "-c:a", "pcm_s16le", "-threads", "0", "-y", dst}
	default:
		args = []string{"-i", src, "-q:a", "0", "-map", "a", dst}
	}

	result, err := run.Run(ctx, execx.Command{Binary: f.Binary, Args: args})
	if err != nil {
		// Remove a half-written artifact so the reuse check above cannot
		// pick it up on the next run.
		os.Remove(dst)
		if result != nil && len(result.Stderr) > 0 {
			return "", fmt.Errorf("converting %s: %w: %s", filepath.Base(src), err, lastLine(result.Stderr))
		}
		return "", fmt.Errorf("converting %s: %w", filepath.Base(src), err)
	}
	return dst, nil
}

// lastLine extracts the final non-empty line of ffmpeg's stderr, which
// carries the actual failure reason under all the banner output.
func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
