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

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/media"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/queue"
)

var convertCmd = &cobra.Command{
	Use:   "convert [path]",
	Short: "Convert media files without transcribing them",
	Long: `Convert runs the ffmpeg step alone: files whose format the
transcription engine cannot read natively are converted to mp3 (or to
16 kHz mono wav with --to wav) and left beside the sources, or in the
--dest folder. Nothing is transcribed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("to", "mp3", "conversion target: mp3 or wav")
	convertCmd.Flags().String("dest", "", "folder for the converted files (default: beside each source)")
	convertCmd.Flags().String("ffmpeg", "", "ffmpeg binary (default: resolved from PATH)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	input := cfg.Input
	if len(args) == 1 {
		input = args[0]
	}
	if input == "" {
		return fmt.Errorf("no input path: pass it as an argument or set input in the config")
	}

	to, _ := cmd.Flags().GetString("to")
	var target media.Target
	switch to {
	case "mp3":
		target = media.TargetMP3
	case "wav":
		target = media.TargetWAV16k
	default:
		return fmt.Errorf("--to must be mp3 or wav (got %q)", to)
	}

	binary := cfg.Conversion.FFmpegPath
	if v, _ := cmd.Flags().GetString("ffmpeg"); v != "" {
		binary = v
	}

	f := media.NewFFmpeg(binary, target)
	f.WorkDir = cfg.Conversion.WorkDir
	if v, _ := cmd.Flags().GetString("dest"); v != "" {
		f.WorkDir = v
	}
	if _, err := f.Detect(); err != nil {
		return err
	}

	entries, err := queue.List(input)
	if err != nil {
		return err
	}

	// mp3 mode converts what the engine cannot read natively; wav mode
	// prepares everything that is not already a wav.
	var paths []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name)
		switch target {
		case media.TargetWAV16k:
			if !strings.EqualFold(ext, ".wav") {
				paths = append(paths, e.Path)
			}
		default:
			if media.NeedsConversion(ext) {
				paths = append(paths, e.Path)
			}
		}
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stdout, "Nothing to convert.")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := media.ConvertBatch(ctx, f, paths, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to convert", result.Failed)
	}
	return nil
}
