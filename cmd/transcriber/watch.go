// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/history"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/logging"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/media"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/queue"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/runner"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/transcribe"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Transcribe new files as they appear in a folder",
	Long: `Watch monitors a folder and transcribes every supported media
file dropped into it, one at a time, until interrupted. A new file is
picked up once its size stops changing, so partially copied files are
left alone. Files already recorded in the history ledger are skipped.

Watch never prompts: the folder, the output folder, and the backend
settings must come from flags, environment, or config file.`,
	RunE: runWatchCmd,
}

func init() {
	addTranscriptionFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	applyTranscriptionFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Input == "" {
		return fmt.Errorf("no folder to watch (pass --input or set input in the config)")
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("no output folder (pass --output or set output_dir in the config)")
	}
	if cfg.Transcription.Model == "" {
		cfg.Transcription.Model = transcribe.DefaultModel(cfg.Transcription.Backend)
	}

	var langCode string
	if cfg.Transcription.Language != "" {
		lang, err := transcribe.ResolveLanguage(cfg.Transcription.Language)
		if err != nil {
			return err
		}
		langCode = lang.Code
	}

	log := logging.New(cfg.Log, os.Stderr)

	// Conversion artifacts must not land in the watched folder, where
	// their creation would trigger another event.
	if cfg.Conversion.WorkDir == "" {
		workDir, err := os.MkdirTemp("", "transcriber-watch-*")
		if err != nil {
			return err
		}
		defer os.RemoveAll(workDir)
		cfg.Conversion.WorkDir = workDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	converter := media.NewFFmpeg(cfg.Conversion.FFmpegPath, media.TargetMP3)
	converter.WorkDir = cfg.Conversion.WorkDir
	if _, err := converter.Detect(); err != nil {
		log.Warn().Err(err).Msg("ffmpeg not found, files requiring conversion will fail")
	}

	backend, err := transcribe.New(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info().Str("backend", backend.Name()).Msg("backend ready")

	var store *history.Store
	if cfg.History.Enabled {
		if store, err = history.NewStore(cfg.History.Dir); err != nil {
			return fmt.Errorf("opening history ledger: %w", err)
		}
		defer store.Close()
	}

	r := &runner.Runner{
		Converter:   converter,
		Transcriber: backend,
		Store:       store,
		Resume:      store != nil,
		Log:         log,
		Out:         os.Stdout,
		OutputDir:   cfg.OutputDir,
		Language:    langCode,
		Prompt:      cfg.Transcription.Prompt,
	}

	handler := func(ctx context.Context, path string) error {
		entries, err := queue.List(path)
		if err != nil {
			return err
		}
		_, err = r.Process(ctx, entries)
		return err
	}

	w, err := watch.New(cfg.Input, cfg.Watch, log, handler)
	if err != nil {
		return err
	}
	defer w.Close()

	log.Info().Str("dir", cfg.Input).Str("output", cfg.OutputDir).Msg("watching for new media files")
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
