// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/queue"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"
)

func TestApplyTranscriptionFlags(t *testing.T) {
	cmd := &cobra.Command{}
	addTranscriptionFlags(cmd)
	require.NoError(t, cmd.Flags().Set("backend", "openai"))
	require.NoError(t, cmd.Flags().Set("model", "whisper-1"))
	require.NoError(t, cmd.Flags().Set("no-history", "true"))

	cfg := &types.Config{}
	cfg.Transcription.Language = "it"
	cfg.History.Enabled = true
	applyTranscriptionFlags(cmd, cfg)

	assert.Equal(t, types.BackendOpenAI, cfg.Transcription.Backend)
	assert.Equal(t, "whisper-1", cfg.Transcription.Model)
	assert.Equal(t, "it", cfg.Transcription.Language, "unset flags must not clobber config values")
	assert.False(t, cfg.History.Enabled)
}

func TestCaptureMissing(t *testing.T) {
	cfg := &types.Config{Input: "audio.mp3"}
	cfg.Transcription.Model = "base"

	missing := captureMissing(cfg)
	assert.False(t, missing.input)
	assert.False(t, missing.model)
	assert.True(t, missing.device)
	assert.True(t, missing.language)
	assert.True(t, missing.output)
	assert.True(t, missing.order)
}

func TestNeedsFFmpeg(t *testing.T) {
	native := []queue.Entry{{Name: "a.mp3"}}
	mkv := []queue.Entry{{Name: "b.mkv"}}
	wav := []queue.Entry{{Name: "c.WAV"}}

	openai := &types.Config{Transcription: types.TranscriptionConfig{Backend: types.BackendOpenAI}}
	local := &types.Config{Transcription: types.TranscriptionConfig{Backend: types.BackendWhisperCpp}}

	assert.False(t, needsFFmpeg(openai, native))
	assert.True(t, needsFFmpeg(openai, mkv))
	assert.True(t, needsFFmpeg(local, native), "local backend prepares wav input")
	assert.False(t, needsFFmpeg(local, wav))
}
