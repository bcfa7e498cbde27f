// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"
)

// OpenAI transcribes through the audio transcriptions API.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI builds the OpenAI backend. The API key comes from the
// configuration or the OPENAI_API_KEY environment variable.
func NewOpenAI(cfg types.OpenAIConfig, model string) (*OpenAI, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if key == "" {
		return nil, errors.New("openai api key required: set openai.api_key or OPENAI_API_KEY")
	}

	opts := []option.RequestOption{option.WithAPIKey(key)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	if model == "" {
		model = DefaultModel(types.BackendOpenAI)
	}
	return &OpenAI{client: openai.NewClient(opts...), model: model}, nil
}

func (o *OpenAI) Name() string { return "openai" }

// Transcribe uploads the audio file and returns the transcript.
func (o *OpenAI) Transcribe(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	file, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(req.AudioPath), err)
	}
	defer file.Close()

	params := openai.AudioTranscriptionNewParams{
		File:           file,
		Model:          openai.AudioModel(o.model),
		ResponseFormat: openai.AudioResponseFormatJSON,
	}
	if req.Language != "" {
		params.Language = param.NewOpt(req.Language)
	}
	if req.Prompt != "" {
		params.Prompt = param.NewOpt(req.Prompt)
	}

	response, err := o.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai transcription: %w", err)
	}
	if response == nil {
		return nil, errors.New("openai transcription: nil response")
	}

	text := strings.TrimSpace(response.Text)
	if text == "" {
		return nil, errors.New("openai transcription: empty response")
	}

	return &Result{Text: text, Model: o.model, Duration: time.Since(start)}, nil
}
