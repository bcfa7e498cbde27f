// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

// Package types defines the configuration structures shared across the CLI.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Backend identifies the speech-to-text engine.
type Backend string

const (
	// BackendWhisperCpp runs a local whisper.cpp binary.
	BackendWhisperCpp Backend = "whispercpp"
	// BackendOpenAI calls the OpenAI audio transcriptions API.
	BackendOpenAI Backend = "openai"
	// BackendGemini sends inline audio to the Gemini API.
	BackendGemini Backend = "gemini"
)

// Device selects where a local model runs. API backends ignore it.
type Device string

const (
	DeviceGPU Device = "gpu"
	DeviceCPU Device = "cpu"
)

// TranscriptionConfig holds the settings of the transcription stage.
type TranscriptionConfig struct {
	// Backend selects the engine: whispercpp, openai, or gemini.
	Backend Backend `yaml:"backend" mapstructure:"backend"`

	// Device is gpu or cpu. Only the whispercpp backend acts on it.
	Device Device `yaml:"device" mapstructure:"device"`

	// Model is the model identifier (e.g. "base", "whisper-1").
	// Empty means the backend default, or an interactive prompt.
	Model string `yaml:"model" mapstructure:"model"`

	// Language is the audio language, as a full name ("Italian") or an
	// ISO 639-1 code ("it").
	Language string `yaml:"language" mapstructure:"language"`

	// Prompt is optional context text passed to backends that accept one.
	Prompt string `yaml:"prompt,omitempty" mapstructure:"prompt"`
}

// OpenAIConfig holds settings for the OpenAI backend.
type OpenAIConfig struct {
	// APIKey authenticates against the API. Falls back to OPENAI_API_KEY.
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the API endpoint (e.g. for a compatible proxy).
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`
}

// GeminiConfig holds settings for the Gemini backend.
type GeminiConfig struct {
	// APIKey authenticates against the API. Falls back to GEMINI_API_KEY.
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// WhisperCppConfig holds settings for the local whisper.cpp backend.
type WhisperCppConfig struct {
	// BinaryPath is the whisper.cpp executable (resolved via PATH).
	BinaryPath string `yaml:"binary_path" mapstructure:"binary_path"`

	// ModelsDir is where ggml weight files live.
	ModelsDir string `yaml:"models_dir" mapstructure:"models_dir"`

	// Threads is the decoder thread count.
	Threads int `yaml:"threads" mapstructure:"threads"`
}

// ConversionConfig holds settings for the media conversion step.
type ConversionConfig struct {
	// FFmpegPath is the ffmpeg executable (resolved via PATH).
	FFmpegPath string `yaml:"ffmpeg_path" mapstructure:"ffmpeg_path"`

	// WorkDir, when set, receives conversion artifacts instead of the
	// source file's directory.
	WorkDir string `yaml:"work_dir,omitempty" mapstructure:"work_dir"`
}

// HistoryConfig holds settings for the transcription ledger.
type HistoryConfig struct {
	// Enabled turns the ledger on. Off means no records and no resume.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Dir is the base directory for the ledger database.
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// SettleInterval is the delay between size polls while a new file is
	// still being written.
	SettleInterval time.Duration `yaml:"settle_interval" mapstructure:"settle_interval"`

	// MaxSettle bounds how long to wait for a file to stop growing.
	MaxSettle time.Duration `yaml:"max_settle" mapstructure:"max_settle"`
}

// DownloadConfig holds settings for fetching local model weights.
type DownloadConfig struct {
	// BaseURL is the weight repository root.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// MaxRetries is the retry budget for rate-limited or failing fetches.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `yaml:"format" mapstructure:"format"`

	// NoColor disables ANSI colors in console output.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
}

// Config groups every setting the CLI reads. Values resolve in order:
// flags, then environment, then config file, then the defaults applied
// by Validate. Whatever is still empty is asked interactively.
type Config struct {
	// Input is the media file or directory to transcribe.
	Input string `yaml:"input,omitempty" mapstructure:"input"`

	// OutputDir receives the transcript .txt files.
	OutputDir string `yaml:"output_dir,omitempty" mapstructure:"output_dir"`

	// Order is the queue ordering criterion, by name or menu number.
	Order string `yaml:"order,omitempty" mapstructure:"order"`

	Transcription TranscriptionConfig `yaml:"transcription" mapstructure:"transcription"`
	OpenAI        OpenAIConfig        `yaml:"openai" mapstructure:"openai"`
	Gemini        GeminiConfig        `yaml:"gemini" mapstructure:"gemini"`
	WhisperCpp    WhisperCppConfig    `yaml:"whispercpp" mapstructure:"whispercpp"`
	Conversion    ConversionConfig    `yaml:"conversion" mapstructure:"conversion"`
	History       HistoryConfig       `yaml:"history" mapstructure:"history"`
	Watch         WatchConfig         `yaml:"watch" mapstructure:"watch"`
	Download      DownloadConfig      `yaml:"download" mapstructure:"download"`
	Log           LogConfig           `yaml:"log" mapstructure:"log"`
}

// DefaultWeightsBaseURL is where whisper.cpp ggml weights are published.
const DefaultWeightsBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// Validate fills defaults and rejects values outside the accepted sets.
// It normalizes backend and device spellings ("cuda" counts as gpu).
func (c *Config) Validate() error {
	c.Transcription.Backend = Backend(strings.ToLower(strings.TrimSpace(string(c.Transcription.Backend))))
	if c.Transcription.Backend == "" {
		c.Transcription.Backend = BackendWhisperCpp
	}
	switch c.Transcription.Backend {
	case BackendWhisperCpp, BackendOpenAI, BackendGemini:
	default:
		return fmt.Errorf("transcription.backend must be whispercpp, openai, or gemini (got %q)", c.Transcription.Backend)
	}

	c.Transcription.Device = Device(strings.ToLower(strings.TrimSpace(string(c.Transcription.Device))))
	switch c.Transcription.Device {
	case "":
		c.Transcription.Device = DeviceGPU
	case "cuda", "metal":
		c.Transcription.Device = DeviceGPU
	case DeviceGPU, DeviceCPU:
	default:
		return fmt.Errorf("transcription.device must be gpu or cpu (got %q)", c.Transcription.Device)
	}

	if c.WhisperCpp.BinaryPath == "" {
		c.WhisperCpp.BinaryPath = "whisper-cli"
	}
	if c.WhisperCpp.ModelsDir == "" {
		c.WhisperCpp.ModelsDir = "models"
	}
	if c.WhisperCpp.Threads <= 0 {
		c.WhisperCpp.Threads = 4
	}

	if c.Conversion.FFmpegPath == "" {
		c.Conversion.FFmpegPath = "ffmpeg"
	}

	if c.History.Dir == "" {
		c.History.Dir = "history"
	}

	if c.Watch.SettleInterval <= 0 {
		c.Watch.SettleInterval = 500 * time.Millisecond
	}
	if c.Watch.MaxSettle <= 0 {
		c.Watch.MaxSettle = 30 * time.Second
	}

	if c.Download.BaseURL == "" {
		c.Download.BaseURL = DefaultWeightsBaseURL
	}
	if c.Download.MaxRetries <= 0 {
		c.Download.MaxRetries = 3
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of trace, debug, info, warn, error (got %q)", c.Log.Level)
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json (got %q)", c.Log.Format)
	}

	return nil
}
