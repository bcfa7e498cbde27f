// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

// defaultConfig is the annotated starter file written by 'config init'.
// Values match the defaults applied by types.Config.Validate.
const defaultConfig = `# transcriber configuration.
# Search order: ./transcriber.yaml, then ~/.config/transcriber/config.yaml.
# Every key can also be set via TRANSCRIBER_* environment variables
# (e.g. transcription.backend -> TRANSCRIBER_TRANSCRIPTION_BACKEND).

# Media file or folder to transcribe. Usually passed as --input instead.
#input: ""

# Folder that receives the .txt transcripts.
#output_dir: ""

# Queue order: created-asc, created-desc, modified-asc, modified-desc,
# numbered, or any.
#order: any

transcription:
  # whispercpp (local), openai, or gemini.
  backend: whispercpp
  # gpu or cpu. Only the whispercpp backend acts on it.
  device: gpu
  # Model identifier; see 'transcriber models list'.
  model: base
  # Audio language, by name ("Italian") or ISO 639-1 code ("it").
  # Empty means automatic detection where the backend supports it.
  language: ""
  # Optional context text for backends that accept a prompt.
  prompt: ""

openai:
  # Falls back to the OPENAI_API_KEY environment variable.
  api_key: ""
  # Override for OpenAI-compatible endpoints.
  base_url: ""

gemini:
  # Falls back to the GEMINI_API_KEY environment variable.
  api_key: ""

whispercpp:
  binary_path: whisper-cli
  models_dir: models
  threads: 4

conversion:
  ffmpeg_path: ffmpeg
  # When set, converted files land here instead of beside the sources.
  work_dir: ""

history:
  enabled: true
  dir: history

watch:
  settle_interval: 500ms
  max_settle: 30s

download:
  base_url: https://huggingface.co/ggerganov/whisper.cpp/resolve/main
  max_retries: 3

log:
  level: info
  format: console
  no_color: false
`

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create and inspect the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an annotated transcriber.yaml with the default settings",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Show prints the configuration after flags, environment,
config file, and defaults have been merged. API keys are redacted.`,
	RunE: runConfigShow,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing transcriber.yaml")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	const path = "transcriber.yaml"
	if _, err := os.Stat(path); err == nil {
		if force, _ := cmd.Flags().GetBool("force"); !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s.\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.OpenAI.APIKey != "" {
		cfg.OpenAI.APIKey = "(set)"
	}
	if cfg.Gemini.APIKey != "" {
		cfg.Gemini.APIKey = "(set)"
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	os.Stdout.Write(data)
	return nil
}
