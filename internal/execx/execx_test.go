// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

//go:build unix

package execx_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/execx"
)

func TestRunEcho(t *testing.T) {
	result, err := execx.Run(context.Background(), execx.Command{
		Binary: "echo",
		Args:   []string{"hello", "world"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", result.ExitCode)
	}
	out := strings.TrimSpace(string(result.Stdout))
	if out != "hello world" {
		t.Fatalf("expected 'hello world', got %q", out)
	}
}

func TestRunStdin(t *testing.T) {
	result, err := execx.Run(context.Background(), execx.Command{
		Binary: "cat",
		Stdin:  strings.NewReader("from stdin"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(result.Stdout); got != "from stdin" {
		t.Fatalf("expected 'from stdin', got %q", got)
	}
}

func TestRunExitCode(t *testing.T) {
	result, err := execx.Run(context.Background(), execx.Command{
		Binary: "sh",
		Args:   []string{"-c", "exit 42"},
	})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if result.ExitCode != 42 {
		t.Fatalf("expected exit code 42, got %d", result.ExitCode)
	}
}

func TestRunStderr(t *testing.T) {
	result, err := execx.Run(context.Background(), execx.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo oops >&2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stderr := strings.TrimSpace(string(result.Stderr))
	if stderr != "oops" {
		t.Fatalf("expected 'oops' on stderr, got %q", stderr)
	}
}

func TestRunContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := execx.Run(ctx, execx.Command{
		Binary:      "sleep",
		Args:        []string{"10"},
		GracePeriod: 500 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error from context cancellation")
	}
	if result.Duration > 5*time.Second {
		t.Fatalf("process took too long to kill: %v", result.Duration)
	}
}

func TestRunEmptyBinary(t *testing.T) {
	_, err := execx.Run(context.Background(), execx.Command{})
	if err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestRunMissingBinary(t *testing.T) {
	result, err := execx.Run(context.Background(), execx.Command{
		Binary: "definitely-not-a-real-binary-1b2c3",
	})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if result != nil && result.ExitCode != -1 {
		t.Fatalf("expected exit code -1, got %d", result.ExitCode)
	}
}

func TestRunEnv(t *testing.T) {
	result, err := execx.Run(context.Background(), execx.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo $TRANSCRIBER_TEST_VAR"},
		Env:    []string{"TRANSCRIBER_TEST_VAR=hello123"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := strings.TrimSpace(string(result.Stdout))
	if out != "hello123" {
		t.Fatalf("expected 'hello123', got %q", out)
	}
}

func TestLookPath(t *testing.T) {
	if _, err := execx.LookPath("sh"); err != nil {
		t.Fatalf("sh should be on PATH: %v", err)
	}
	if _, err := execx.LookPath("definitely-not-a-real-binary-1b2c3"); err == nil {
		t.Fatal("expected error for missing binary")
	}
}
