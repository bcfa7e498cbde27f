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

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/history"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/logging"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/media"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/prompt"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/queue"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/runner"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/transcribe"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Transcribe a media file or every media file in a folder",
	Long: `Run enumerates the input path, sorts the queue by the chosen
criterion, converts formats the engine cannot read natively, and
transcribes one file at a time. Each transcript lands in the output
folder as <name>.txt.

Values not provided via flags, environment, or config file are asked
interactively. Pass --no-input to fail instead of asking.`,
	RunE: runRun,
}

func init() {
	addTranscriptionFlags(runCmd)
	runCmd.Flags().String("order", "", "queue order: created-asc, created-desc, modified-asc, modified-desc, numbered, or any")
	runCmd.Flags().Bool("resume", false, "skip files already recorded in the history ledger")
	runCmd.Flags().Bool("dry-run", false, "print the ordered queue and exit without transcribing")
	runCmd.Flags().Bool("no-input", false, "never prompt; fail when a required value is missing")
	rootCmd.AddCommand(runCmd)
}

// addTranscriptionFlags declares the flags shared by run and watch.
func addTranscriptionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("input", "i", "", "media file or folder to transcribe")
	f.StringP("output", "o", "", "folder that receives the .txt transcripts")
	f.String("backend", "", "transcription engine: whispercpp, openai, or gemini")
	f.String("device", "", "whispercpp device: gpu or cpu")
	f.String("model", "", "model identifier (see 'transcriber models list')")
	f.StringP("language", "l", "", "audio language, by name or ISO 639-1 code")
	f.String("prompt", "", "context text passed to backends that accept one")
	f.Bool("no-history", false, "do not record outcomes in the history ledger")
}

// applyTranscriptionFlags overlays the shared flag values onto cfg.
// Only flags the user actually set are applied, so config file and
// environment values survive.
func applyTranscriptionFlags(cmd *cobra.Command, cfg *types.Config) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input, _ = flags.GetString("input")
	}
	if flags.Changed("output") {
		cfg.OutputDir, _ = flags.GetString("output")
	}
	if flags.Changed("backend") {
		v, _ := flags.GetString("backend")
		cfg.Transcription.Backend = types.Backend(v)
	}
	if flags.Changed("device") {
		v, _ := flags.GetString("device")
		cfg.Transcription.Device = types.Device(v)
	}
	if flags.Changed("model") {
		cfg.Transcription.Model, _ = flags.GetString("model")
	}
	if flags.Changed("language") {
		cfg.Transcription.Language, _ = flags.GetString("language")
	}
	if flags.Changed("prompt") {
		cfg.Transcription.Prompt, _ = flags.GetString("prompt")
	}
	if flags.Changed("no-history") {
		v, _ := flags.GetBool("no-history")
		cfg.History.Enabled = !v
	}
}

// missingSettings records which values were still unresolved before
// defaults were filled in, so the questionnaire asks only for those.
type missingSettings struct {
	device   bool
	model    bool
	input    bool
	language bool
	output   bool
	order    bool
}

func captureMissing(cfg *types.Config) missingSettings {
	return missingSettings{
		device:   cfg.Transcription.Device == "",
		model:    cfg.Transcription.Model == "",
		input:    cfg.Input == "",
		language: cfg.Transcription.Language == "",
		output:   cfg.OutputDir == "",
		order:    cfg.Order == "",
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	applyTranscriptionFlags(cmd, cfg)
	if cmd.Flags().Changed("order") {
		cfg.Order, _ = cmd.Flags().GetString("order")
	}

	missing := captureMissing(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	noInput, _ := cmd.Flags().GetBool("no-input")
	if !noInput {
		if err := promptMissing(cfg, missing); err != nil {
			return err
		}
	}
	if cfg.Input == "" {
		return fmt.Errorf("no input path (pass --input, set input in the config, or run without --no-input)")
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("no output folder (pass --output, set output_dir in the config, or run without --no-input)")
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

	entries, err := queue.List(cfg.Input)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(os.Stdout, "No supported media files found in %s.\n", cfg.Input)
		return nil
	}

	criterion := queue.OrderAny
	if cfg.Order != "" {
		if criterion, err = queue.ParseCriterion(cfg.Order); err != nil {
			return err
		}
	}
	queue.Sort(entries, criterion)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		fmt.Fprintf(os.Stdout, "Queue order: %s\n", criterion)
		for i, e := range entries {
			fmt.Fprintf(os.Stdout, "%d - %s\n", i+1, e.Name)
		}
		fmt.Fprintf(os.Stdout, "%d file(s) queued, nothing transcribed.\n", len(entries))
		return nil
	}

	log := logging.New(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	converter := media.NewFFmpeg(cfg.Conversion.FFmpegPath, media.TargetMP3)
	converter.WorkDir = cfg.Conversion.WorkDir
	if needsFFmpeg(cfg, entries) {
		ffmpegPath, err := converter.Detect()
		if err != nil {
			return fmt.Errorf("ffmpeg is required for this queue: %w", err)
		}
		log.Debug().Str("path", ffmpegPath).Msg("ffmpeg detected")
	}

	log.Info().
		Str("backend", string(cfg.Transcription.Backend)).
		Str("model", cfg.Transcription.Model).
		Str("device", string(cfg.Transcription.Device)).
		Msg("loading transcription backend")
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
	resume, _ := cmd.Flags().GetBool("resume")
	if resume && store == nil {
		return fmt.Errorf("--resume needs the history ledger (drop --no-history or enable history in the config)")
	}

	r := &runner.Runner{
		Converter:   converter,
		Transcriber: backend,
		Store:       store,
		Resume:      resume,
		Log:         log,
		Out:         os.Stdout,
		OutputDir:   cfg.OutputDir,
		Language:    langCode,
		Prompt:      cfg.Transcription.Prompt,
	}

	fmt.Fprintf(os.Stdout, "\n%s\n", strings.Repeat("-", 54))
	report, err := r.Process(ctx, entries)
	if err != nil {
		return err
	}
	if report.Total() > 0 && report.AllFailed() {
		return fmt.Errorf("all %d file(s) failed", report.Failed)
	}
	return nil
}

// promptMissing walks the interactive questionnaire for every value
// that was still unresolved after flags, environment, and config file.
func promptMissing(cfg *types.Config, missing missingSettings) error {
	p := prompt.New(os.Stdin, os.Stdout)

	if missing.device && cfg.Transcription.Backend == types.BackendWhisperCpp {
		useGPU, err := p.AskYesNo("\nDo you prefer to use the GPU for transcription?")
		if err != nil {
			return err
		}
		cfg.Transcription.Device = types.DeviceCPU
		if useGPU {
			cfg.Transcription.Device = types.DeviceGPU
		}
	}

	if missing.model {
		models := transcribe.Models(cfg.Transcription.Backend)
		idx, err := p.AskChoice("\nWhich model do you prefer to use?", models)
		if err != nil {
			return err
		}
		cfg.Transcription.Model = models[idx]
	}

	if missing.input {
		in, err := p.AskExistingPath("\nWrite the path to the file to be transcribed or to the folder containing all the files to be transcribed.\nNOTE: files sharing the same name produce the same transcript name and overwrite each other")
		if err != nil {
			return err
		}
		cfg.Input = in
	}

	if missing.language {
		all := transcribe.Languages()
		names := make([]string, 0, len(all))
		for _, l := range all {
			names = append(names, l.Name)
		}
		question := fmt.Sprintf("\nIndicate the language to be used for transcriptions.\nThe supported languages are:\n%s", strings.Join(names, ", "))
		answer, err := p.AskValidated(question,
			"Please, answer correctly indicating one of the supported languages",
			func(s string) error {
				_, err := transcribe.ResolveLanguage(s)
				return err
			})
		if err != nil {
			return err
		}
		cfg.Transcription.Language = answer
	}

	if missing.output {
		out, err := p.AskExistingDir("\nWrite the path to the folder where you want to save the transcripts")
		if err != nil {
			return err
		}
		cfg.OutputDir = out
	}

	if missing.order && isDir(cfg.Input) {
		options := make([]string, 0, len(queue.Criteria))
		for _, c := range queue.Criteria {
			options = append(options, c.Description())
		}
		idx, err := p.AskChoice("\nYou can choose one of the following order criteria:", options)
		if err != nil {
			return err
		}
		cfg.Order = queue.Criteria[idx].String()
	}

	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// needsFFmpeg reports whether any queued file will touch the converter,
// either for the mp3 pre-conversion or for the wav preparation of the
// local backend.
func needsFFmpeg(cfg *types.Config, entries []queue.Entry) bool {
	for _, e := range entries {
		ext := filepath.Ext(e.Name)
		if media.NeedsConversion(ext) {
			return true
		}
		if cfg.Transcription.Backend == types.BackendWhisperCpp && !strings.EqualFold(ext, ".wav") {
			return true
		}
	}
	return false
}
