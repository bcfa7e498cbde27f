// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

// Package logging configures the zerolog logger used across the CLI.
package logging

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"
)

// consoleTimeFormat is the clock layout printed on console lines.
const consoleTimeFormat = "02/01/2006 15:04:05"

// New builds a logger from cfg, writing to out. An unknown level falls
// back to info rather than failing.
func New(cfg types.LogConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(out)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: consoleTimeFormat,
			NoColor:    cfg.NoColor,
		})
	}

	return logger.Level(level).With().Timestamp().Logger()
}
