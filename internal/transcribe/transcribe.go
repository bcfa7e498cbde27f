// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

// Package transcribe turns audio files into text through pluggable
// speech-to-text backends: a local whisper.cpp binary or the OpenAI and
// Gemini APIs.
package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"
)

// Request describes one file to transcribe.
type Request struct {
	// AudioPath is the media file handed to the backend. The caller has
	// already converted formats the backend cannot ingest.
	AudioPath string

	// Language is the ISO 639-1 code of the audio, or "" to let the
	// backend detect it.
	Language string

	// Prompt is optional context text for backends that accept one.
	Prompt string
}

// Result is a completed transcription.
type Result struct {
	// Text is the transcript, trimmed of surrounding whitespace.
	Text string

	// Model is the model that produced the text.
	Model string

	// Duration is how long the backend call took.
	Duration time.Duration
}

// Transcriber converts one audio file to text. Implementations are safe
// to reuse across files; expensive setup happens at construction.
type Transcriber interface {
	// Name identifies the backend for logs and the history ledger.
	Name() string

	// Transcribe processes a single file. The context cancels long
	// backend calls and any spawned processes.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}

// New builds the backend selected by the configuration. Construction
// resolves binaries, model weights, and API keys, so a misconfigured
// backend fails before the first file is touched.
func New(ctx context.Context, cfg *types.Config) (Transcriber, error) {
	switch cfg.Transcription.Backend {
	case types.BackendWhisperCpp:
		return NewWhisperCpp(cfg)
	case types.BackendOpenAI:
		return NewOpenAI(cfg.OpenAI, cfg.Transcription.Model)
	case types.BackendGemini:
		return NewGemini(ctx, cfg.Gemini, cfg.Transcription.Model)
	default:
		return nil, fmt.Errorf("unknown transcription backend %q", cfg.Transcription.Backend)
	}
}
