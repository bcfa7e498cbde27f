// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

// Package runner drives a transcription run: one file at a time through
// conversion, the backend, the transcript write, and the history ledger.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/history"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/media"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/queue"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/transcribe"
)

// separator closes each file's console block.
const separator = "------------------------------------------------------"

// Report summarizes a run.
type Report struct {
	Completed int
	Skipped   int
	Failed    int
}

// Total returns the number of files processed.
func (r Report) Total() int {
	return r.Completed + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed.
func (r Report) HasFailures() bool {
	return r.Failed > 0
}

// AllFailed reports whether nothing got through.
func (r Report) AllFailed() bool {
	return r.Failed > 0 && r.Completed == 0 && r.Skipped == 0
}

// Runner processes a queue of media files sequentially. Files are
// independent: a failure is reported and the run moves on.
type Runner struct {
	// Converter produces the mp3 rendition of formats the backend
	// cannot ingest directly.
	Converter media.Converter

	// Transcriber is the backend doing the actual work.
	Transcriber transcribe.Transcriber

	// Store, when non-nil, records completions. Resume additionally
	// skips files the store already has.
	Store  *history.Store
	Resume bool

	// Log receives operational detail; Out receives the per-file status
	// lines and the final summary.
	Log zerolog.Logger
	Out io.Writer

	// OutputDir receives one <basename>.txt per transcribed file.
	OutputDir string

	// Language is the ISO 639-1 code for every file, "" to autodetect.
	Language string

	// Prompt is optional context text for backends that accept one.
	Prompt string
}

// Process transcribes every entry in order. It returns an error only
// when the run cannot proceed at all; per-file failures are counted in
// the report. A cancelled context stops the queue between files.
func (r *Runner) Process(ctx context.Context, entries []queue.Entry) (Report, error) {
	var report Report

	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return report, fmt.Errorf("creating output directory: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fmt.Fprintf(r.Out, "\n%s:\n", entry.Name)

		switch r.processOne(ctx, entry) {
		case outcomeCompleted:
			report.Completed++
		case outcomeSkipped:
			report.Skipped++
		case outcomeFailed:
			report.Failed++
		}

		fmt.Fprintf(r.Out, "\n%s\n", separator)
	}

	fmt.Fprintf(r.Out, "\nRun summary: %d completed, %d skipped, %d failed (total: %d)\n",
		report.Completed, report.Skipped, report.Failed, report.Total())
	return report, nil
}

type outcome int

const (
	outcomeCompleted outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (r *Runner) processOne(ctx context.Context, entry queue.Entry) outcome {
	log := r.Log.With().Str("file", entry.Name).Logger()

	if r.Resume && r.Store != nil {
		done, err := r.Store.Has(ctx, entry.Path)
		if err != nil {
			log.Warn().Err(err).Msg("history lookup failed")
		} else if done {
			log.Info().Msg("already transcribed, skipping")
			fmt.Fprintf(r.Out, "skipped: %s (already transcribed)\n", entry.Name)
			return outcomeSkipped
		}
	}

	audio := entry.Path
	ext := filepath.Ext(entry.Name)
	if media.NeedsConversion(ext) {
		if artifactExists(r.Converter, entry.Path) {
			log.Info().Msg("mp3 version already present, conversion skipped")
		} else {
			log.Info().Str("from", ext).Msg("starting conversion to mp3")
		}
		converted, err := r.Converter.Convert(ctx, entry.Path)
		if err != nil {
			log.Error().Err(err).Msg("conversion failed")
			fmt.Fprintf(r.Out, "failed:  %s (%v)\n", entry.Name, err)
			return outcomeFailed
		}
		audio = converted
	}

	log.Info().Msg("starting transcription")
	result, err := r.Transcriber.Transcribe(ctx, transcribe.Request{
		AudioPath: audio,
		Language:  r.Language,
		Prompt:    r.Prompt,
	})
	if err != nil {
		log.Error().Err(err).Msg("transcription failed")
		fmt.Fprintf(r.Out, "failed:  %s (%v)\n", entry.Name, err)
		return outcomeFailed
	}

	outPath := r.transcriptPath(entry.Name)
	if err := os.WriteFile(outPath, []byte(result.Text), 0o644); err != nil {
		log.Error().Err(err).Msg("writing transcript failed")
		fmt.Fprintf(r.Out, "failed:  %s (%v)\n", entry.Name, err)
		return outcomeFailed
	}

	log.Info().Dur("took", result.Duration).Str("output", outPath).
		Msg("transcription completed successfully")
	fmt.Fprintf(r.Out, "completed: %s -> %s\n", entry.Name, outPath)

	if r.Store != nil {
		record := history.Record{
			SourcePath: entry.Path,
			OutputPath: outPath,
			Backend:    r.Transcriber.Name(),
			Model:      result.Model,
			Language:   r.Language,
			Duration:   result.Duration,
		}
		if err := r.Store.Record(ctx, record); err != nil {
			log.Warn().Err(err).Msg("recording history failed")
		}
	}

	return outcomeCompleted
}

// transcriptPath maps a source filename to its transcript destination:
// the basename with the media extension replaced by .txt.
func (r *Runner) transcriptPath(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(r.OutputDir, base+".txt")
}

// destPather is implemented by converters that can predict their output
// path, letting the runner report a reused artifact before converting.
type destPather interface {
	DestPath(src string) string
}

func artifactExists(c media.Converter, src string) bool {
	dp, ok := c.(destPather)
	if !ok {
		return false
	}
	_, err := os.Stat(dp.DestPath(src))
	return err == nil
}
