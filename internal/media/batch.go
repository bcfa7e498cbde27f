// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

// Package media decides which files the queue accepts and converts the
// ones the transcription backends cannot ingest directly.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBatch runs each path through the converter, printing per-file
// status to w and returning a summary. Files whose artifact already
// exists are counted as skipped. A failed file does not stop the batch.
func ConvertBatch(ctx context.Context, f *FFmpeg, paths []string, w io.Writer) BatchResult {
	var result BatchResult
	for _, src := range paths {
		base := filepath.Base(src)

		if _, err := os.Stat(f.DestPath(src)); err == nil {
			fmt.Fprintf(w, "skipped: %s (already converted)\n", base)
			result.Skipped++
			continue
		}

		if _, err := f.Convert(ctx, src); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "converted: %s\n", base)
		result.Converted++
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
