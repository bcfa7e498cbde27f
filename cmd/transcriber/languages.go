// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/transcribe"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported transcription languages",
	Long: `Languages prints every language the transcription engines
accept, with the ISO 639-1 code used on the command line.`,
	Run: func(cmd *cobra.Command, args []string) {
		all := transcribe.Languages()
		fmt.Fprintf(os.Stdout, "Supported languages (%d):\n", len(all))
		for _, l := range all {
			fmt.Fprintf(os.Stdout, "  %s  %s\n", l.Code, l.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
