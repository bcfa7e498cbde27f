// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

// Package main is the entry point for the transcriber CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/secrets"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"
)

// Build metadata, set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command for the transcriber CLI.
var rootCmd = &cobra.Command{
	Use:   "transcriber",
	Short: "Batch speech-to-text for audio and video files",
	Long: `transcriber turns audio and video files into plain-text transcripts.

Point it at a single file or at a folder: every supported format is
queued, converted with ffmpeg when the transcription engine cannot read
it natively, and transcribed to a .txt file named after the source.
Transcription runs locally through whisper.cpp or remotely through the
OpenAI and Gemini APIs.

Settings resolve from flags, then TRANSCRIBER_* environment variables,
then the config file. Anything still missing is asked interactively
before the queue starts.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading .env: %w", err)
		}
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		secrets.Apply(s)
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./transcriber.yaml or ~/.config/transcriber/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, or error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colors in console log output")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("transcriber")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "transcriber"))
		}
	}

	viper.SetEnvPrefix("TRANSCRIBER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("history.enabled", true)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// configString resolves one string setting: a flag set on the command
// line wins, then the viper state (environment and config file).
func configString(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

// loadConfig assembles the full configuration from the viper state and
// the logging flags shared by every subcommand. Validate is left to the
// caller so interactive commands can prompt for missing values first.
func loadConfig(cmd *cobra.Command) *types.Config {
	cfg := &types.Config{
		Input:     viper.GetString("input"),
		OutputDir: viper.GetString("output_dir"),
		Order:     viper.GetString("order"),
		Transcription: types.TranscriptionConfig{
			Backend:  types.Backend(viper.GetString("transcription.backend")),
			Device:   types.Device(viper.GetString("transcription.device")),
			Model:    viper.GetString("transcription.model"),
			Language: viper.GetString("transcription.language"),
			Prompt:   viper.GetString("transcription.prompt"),
		},
		OpenAI: types.OpenAIConfig{
			APIKey:  viper.GetString("openai.api_key"),
			BaseURL: viper.GetString("openai.base_url"),
		},
		Gemini: types.GeminiConfig{
			APIKey: viper.GetString("gemini.api_key"),
		},
		WhisperCpp: types.WhisperCppConfig{
			BinaryPath: viper.GetString("whispercpp.binary_path"),
			ModelsDir:  viper.GetString("whispercpp.models_dir"),
			Threads:    viper.GetInt("whispercpp.threads"),
		},
		Conversion: types.ConversionConfig{
			FFmpegPath: viper.GetString("conversion.ffmpeg_path"),
			WorkDir:    viper.GetString("conversion.work_dir"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Dir:     viper.GetString("history.dir"),
		},
		Watch: types.WatchConfig{
			SettleInterval: viper.GetDuration("watch.settle_interval"),
			MaxSettle:      viper.GetDuration("watch.max_settle"),
		},
		Download: types.DownloadConfig{
			BaseURL:    viper.GetString("download.base_url"),
			MaxRetries: viper.GetInt("download.max_retries"),
		},
		Log: types.LogConfig{
			Level:   configString(cmd, "log-level", "log.level"),
			Format:  configString(cmd, "log-format", "log.format"),
			NoColor: viper.GetBool("log.no_color"),
		},
	}

	if v, _ := cmd.Flags().GetBool("no-color"); v {
		cfg.Log.NoColor = true
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
