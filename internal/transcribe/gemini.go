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

	"google.golang.org/genai"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/media"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"
)

// Gemini transcribes by sending the audio inline to the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds the Gemini backend. The API key comes from the
// configuration or the GEMINI_API_KEY environment variable.
func NewGemini(ctx context.Context, cfg types.GeminiConfig, model string) (*Gemini, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if key == "" {
		return nil, errors.New("gemini api key required: set gemini.api_key or GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  key,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	if model == "" {
		model = DefaultModel(types.BackendGemini)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

// Transcribe reads the whole audio file into memory and sends it inline
// with a transcription instruction.
func (g *Gemini) Transcribe(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	ext := filepath.Ext(req.AudioPath)
	mimeType := media.AudioMIMEType(ext)
	if mimeType == "" {
		return nil, fmt.Errorf("gemini cannot ingest %s files directly", ext)
	}

	audio, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(req.AudioPath), err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(
			[]*genai.Part{
				genai.NewPartFromText(transcriptionInstruction(req)),
				genai.NewPartFromBytes(audio, mimeType),
			},
			genai.RoleUser,
		),
	}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return nil, fmt.Errorf("gemini transcription: %w", err)
	}

	text := strings.TrimSpace(response.Text())
	if text == "" {
		return nil, errors.New("gemini transcription: empty response")
	}

	return &Result{Text: text, Model: g.model, Duration: time.Since(start)}, nil
}

// transcriptionInstruction builds the text part that accompanies the
// audio. Gemini has no language parameter, so the language goes into the
// instruction.
func transcriptionInstruction(req Request) string {
	var b strings.Builder
	b.WriteString("Transcribe this audio accurately. Return only the transcript text.")
	if req.Language != "" {
		if lang, ok := LanguageByCode(req.Language); ok {
			fmt.Fprintf(&b, " The audio language is %s.", lang.Name)
		}
	}
	if req.Prompt != "" {
		b.WriteString(" ")
		b.WriteString(req.Prompt)
	}
	return b.String()
}
