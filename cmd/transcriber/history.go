// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/history"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/prompt"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the transcription ledger",
	Long: `History shows what has been transcribed so far. The ledger
also powers 'run --resume', which skips files already recorded here.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past transcriptions, newest first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every record in the ledger",
	RunE:  runHistoryClear,
}

func init() {
	historyListCmd.Flags().Int("limit", 0, "show at most this many records (0 = all)")
	historyClearCmd.Flags().Bool("yes", false, "clear without asking for confirmation")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := history.NewStore(cfg.History.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "History is empty.")
		return nil
	}

	for _, rec := range records {
		lang := rec.Language
		if lang == "" {
			lang = "auto"
		}
		fmt.Fprintf(os.Stdout, "%s  %s -> %s  (%s/%s, %s, %s)\n",
			rec.CompletedAt.Local().Format("02/01/2006 15:04"),
			rec.SourcePath, rec.OutputPath,
			rec.Backend, rec.Model, lang,
			rec.Duration.Round(time.Second))
	}
	fmt.Fprintf(os.Stdout, "%d record(s).\n", len(records))
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		p := prompt.New(os.Stdin, os.Stdout)
		ok, err := p.AskYesNo("Delete every record in the transcription history?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stdout, "Nothing deleted.")
			return nil
		}
	}

	store, err := history.NewStore(cfg.History.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted %d record(s).\n", n)
	return nil
}
