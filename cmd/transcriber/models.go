// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/modeldl"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/transcribe"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List and download transcription models",
	Long: `Models lists the model identifiers each backend accepts and
downloads whisper.cpp weight files for offline use.`,
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the known models per backend",
	RunE:  runModelsList,
}

var modelsDownloadCmd = &cobra.Command{
	Use:   "download <model>...",
	Short: "Download whisper.cpp weights",
	Long: `Download fetches the ggml weight file for each named
whisper.cpp model into the configured models folder. Existing files
are kept; interrupted downloads leave nothing behind.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runModelsDownload,
}

func init() {
	modelsListCmd.Flags().String("backend", "", "limit the listing to one backend")

	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsDownloadCmd)
	rootCmd.AddCommand(modelsCmd)
}

func runModelsList(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	backends := []types.Backend{types.BackendWhisperCpp, types.BackendOpenAI, types.BackendGemini}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		b := types.Backend(strings.ToLower(v))
		if len(transcribe.Models(b)) == 0 {
			return fmt.Errorf("unknown backend %q", v)
		}
		backends = []types.Backend{b}
	}

	for _, b := range backends {
		fmt.Fprintf(os.Stdout, "%s:\n", b)
		def := transcribe.DefaultModel(b)
		for _, m := range transcribe.Models(b) {
			var notes []string
			if m == def {
				notes = append(notes, "default")
			}
			if b == types.BackendWhisperCpp {
				weights := filepath.Join(cfg.WhisperCpp.ModelsDir, transcribe.WeightsFilename(m))
				if _, err := os.Stat(weights); err == nil {
					notes = append(notes, "downloaded")
				}
			}
			line := "  " + m
			if len(notes) > 0 {
				line += " (" + strings.Join(notes, ", ") + ")"
			}
			fmt.Fprintln(os.Stdout, line)
		}
	}
	return nil
}

func runModelsDownload(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dl := modeldl.New(cfg.Download, cfg.WhisperCpp.ModelsDir)
	failed := 0
	for _, model := range args {
		path, existing, err := dl.Download(ctx, model)
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed:  %s (%v)\n", model, err)
			failed++
			continue
		}
		if existing {
			fmt.Fprintf(os.Stdout, "skipped: %s (already present at %s)\n", model, path)
			continue
		}
		fmt.Fprintf(os.Stdout, "downloaded: %s -> %s\n", model, path)
	}
	if failed > 0 {
		return fmt.Errorf("%d model(s) failed to download", failed)
	}
	return nil
}
