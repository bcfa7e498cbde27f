// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package media

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/execx"
)

// fakeRunner implements runner for testing. It records every command and
// returns canned results without spawning processes.
type fakeRunner struct {
	calls  []execx.Command
	err    error
	result *execx.Result
	onRun  func(cmd execx.Command)
}

func (f *fakeRunner) Run(_ context.Context, cmd execx.Command) (*execx.Result, error) {
	f.calls = append(f.calls, cmd)
	if f.onRun != nil {
		f.onRun(cmd)
	}
	if f.err != nil {
		return f.result, f.err
	}
	return &execx.Result{}, nil
}

func (f *fakeRunner) LookPath(file string) (string, error) {
	return "/usr/bin/" + file, nil
}

// writeSource creates a media file in a temp dir and returns its path.
func writeSource(t *testing.T, name string) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(src, []byte("fake media"), 0o644); err != nil {
		t.Fatal(err)
	}
	return src
}

func TestDestPath(t *testing.T) {
	f := NewFFmpeg("ffmpeg", TargetMP3)

	got := f.DestPath(filepath.Join("in", "interview (3).mkv"))
	want := filepath.Join("in", "interview (3).mp3")
	if got != want {
		t.Errorf("DestPath = %q, want %q", got, want)
	}

	f.WorkDir = filepath.Join("tmp", "work")
	got = f.DestPath(filepath.Join("in", "interview (3).mkv"))
	want = filepath.Join("tmp", "work", "interview (3).mp3")
	if got != want {
		t.Errorf("DestPath with WorkDir = %q, want %q", got, want)
	}
}

func TestConvertBuildsMP3Args(t *testing.T) {
	src := writeSource(t, "clip.mkv")
	run := &fakeRunner{}
	f := &FFmpeg{Binary: "ffmpeg", Target: TargetMP3, run: run}

	dst, err := f.Convert(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	wantDst := strings.TrimSuffix(src, ".mkv") + ".mp3"
	if dst != wantDst {
		t.Errorf("dst = %q, want %q", dst, wantDst)
	}

	if len(run.calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(run.calls))
	}
	wantArgs := []string{"-i", src, "-q:a", "0", "-map", "a", wantDst}
	if !reflect.DeepEqual(run.calls[0].Args, wantArgs) {
		t.Errorf("args = %v, want %v", run.calls[0].Args, wantArgs)
	}
}

func TestConvertBuildsWAVArgs(t *testing.T) {
	src := writeSource(t, "clip.mp3")
	run := &fakeRunner{}
	f := &FFmpeg{Binary: "ffmpeg", Target: TargetWAV16k, run: run}

	dst, err := f.Convert(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}

	wantArgs := []string{"-i", src, "-vn", "-ar", "16000", "-ac", "1", "-c:a", "pcm_s16le", "-threads", "0", "-y", dst}
	if !reflect.DeepEqual(run.calls[0].Args, wantArgs) {
		t.Errorf("args = %v, want %v", run.calls[0].Args, wantArgs)
	}
	if !strings.HasSuffix(dst, ".wav") {
		t.Errorf("dst = %q, want .wav suffix", dst)
	}
}

func TestConvertReusesExistingArtifact(t *testing.T) {
	src := writeSource(t, "clip.mkv")
	dst := strings.TrimSuffix(src, ".mkv") + ".mp3"
	if err := os.WriteFile(dst, []byte("already converted"), 0o644); err != nil {
		t.Fatal(err)
	}

	run := &fakeRunner{}
	f := &FFmpeg{Binary: "ffmpeg", Target: TargetMP3, run: run}

	got, err := f.Convert(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if got != dst {
		t.Errorf("dst = %q, want %q", got, dst)
	}
	if len(run.calls) != 0 {
		t.Errorf("converter ran %d times on an existing artifact, want 0", len(run.calls))
	}
}

func TestConvertUsesWorkDir(t *testing.T) {
	src := writeSource(t, "clip.mkv")
	workDir := filepath.Join(t.TempDir(), "work")

	run := &fakeRunner{}
	f := &FFmpeg{Binary: "ffmpeg", Target: TargetMP3, WorkDir: workDir, run: run}

	dst, err := f.Convert(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(dst) != workDir {
		t.Errorf("dst dir = %q, want %q", filepath.Dir(dst), workDir)
	}
	if _, err := os.Stat(workDir); err != nil {
		t.Errorf("work dir not created: %v", err)
	}
}

func TestConvertFailureRemovesPartialArtifact(t *testing.T) {
	src := writeSource(t, "clip.mkv")
	dst := strings.TrimSuffix(src, ".mkv") + ".mp3"

	run := &fakeRunner{
		err:    errors.New("exit code 1"),
		result: &execx.Result{Stderr: []byte("ffmpeg version n6.0\nInvalid data found when processing input")},
		onRun: func(_ execx.Command) {
			// Simulate ffmpeg dying after creating the output file.
			os.WriteFile(dst, []byte("partial"), 0o644)
		},
	}
	f := &FFmpeg{Binary: "ffmpeg", Target: TargetMP3, run: run}

	_, err := f.Convert(context.Background(), src)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("error %q does not carry ffmpeg stderr", err)
	}
	if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
		t.Error("partial artifact left behind after failure")
	}
}

func TestDetectExplicitPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-ffmpeg")
	f := &FFmpeg{Binary: missing, Target: TargetMP3, run: &fakeRunner{}}
	if _, err := f.Detect(); err == nil {
		t.Error("expected error for missing explicit binary path")
	}

	real := writeSource(t, "ffmpeg")
	f = &FFmpeg{Binary: real, Target: TargetMP3, run: &fakeRunner{}}
	got, err := f.Detect()
	if err != nil {
		t.Fatal(err)
	}
	if got != real {
		t.Errorf("Detect = %q, want %q", got, real)
	}
}

func TestDetectPATHLookup(t *testing.T) {
	f := &FFmpeg{Binary: "ffmpeg", Target: TargetMP3, run: &fakeRunner{}}
	got, err := f.Detect()
	if err != nil {
		t.Fatal(err)
	}
	if got != "/usr/bin/ffmpeg" {
		t.Errorf("Detect = %q, want /usr/bin/ffmpeg", got)
	}
}

func TestConvertBatch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.mkv")
	bad := filepath.Join(dir, "bad.mkv")
	done := filepath.Join(dir, "done.mkv")
	for _, p := range []string{good, bad, done} {
		if err := os.WriteFile(p, []byte("fake media"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Pre-existing artifact makes "done.mkv" a skip.
	if err := os.WriteFile(filepath.Join(dir, "done.mp3"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	run := &fakeRunner{}
	run.onRun = func(cmd execx.Command) {
		for _, a := range cmd.Args {
			if a == bad {
				run.err = errors.New("exit code 1")
				return
			}
		}
		run.err = nil
	}
	f := &FFmpeg{Binary: "ffmpeg", Target: TargetMP3, run: run}

	var buf bytes.Buffer
	result := ConvertBatch(context.Background(), f, []string{good, bad, done}, &buf)

	if result.Converted != 1 || result.Failed != 1 || result.Skipped != 1 {
		t.Errorf("result = %+v, want 1 converted, 1 failed, 1 skipped", result)
	}
	if result.Total() != 3 {
		t.Errorf("Total = %d, want 3", result.Total())
	}
	if !result.HasFailures() {
		t.Error("HasFailures = false, want true")
	}

	out := buf.String()
	for _, want := range []string{"converted: good.mkv", "failed:  bad.mkv", "skipped: done.mkv", "Batch summary: 1 converted, 1 skipped, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
