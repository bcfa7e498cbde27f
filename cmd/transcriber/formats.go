// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/media"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported media formats",
	Long: `Formats prints every file extension the queue accepts and
whether the file is passed to the engine as is or converted to mp3
first.`,
	Run: func(cmd *cobra.Command, args []string) {
		exts := media.SupportedExtensions()
		fmt.Fprintf(os.Stdout, "Supported formats (%d):\n", len(exts))
		for _, ext := range exts {
			note := "native"
			if media.NeedsConversion(ext) {
				note = "converted to mp3 first"
			}
			fmt.Fprintf(os.Stdout, "  %-6s %s\n", ext, note)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
