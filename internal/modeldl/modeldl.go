// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

// Package modeldl fetches whisper.cpp ggml weight files from the public
// model repository.
package modeldl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/httpx"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/transcribe"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"
)

const userAgent = "MultiFormatTranscriber"

// Downloader fetches model weights into a local directory.
type Downloader struct {
	// Client is the HTTP client; nil means http.DefaultClient.
	Client *http.Client

	// BaseURL is the weight repository root the filename is appended to.
	BaseURL string

	// Dir receives the downloaded weight files.
	Dir string

	// MaxRetries bounds retries on rate-limited or failing fetches.
	MaxRetries int
}

// New builds a downloader for the configured repository and directory.
func New(cfg types.DownloadConfig, dir string) *Downloader {
	return &Downloader{
		BaseURL:    cfg.BaseURL,
		Dir:        dir,
		MaxRetries: cfg.MaxRetries,
	}
}

func (d *Downloader) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return http.DefaultClient
}

// Download fetches the weights for a model and returns the local path.
// Weights already on disk are not fetched again; the second return value
// reports that case. The file lands under its final name only after the
// full body has been written, so an interrupted download never leaves a
// partial weight file behind.
func (d *Downloader) Download(ctx context.Context, model string) (string, bool, error) {
	if !transcribe.KnownModel(types.BackendWhisperCpp, model) {
		return "", false, fmt.Errorf("unknown model %q: choose one of %s",
			model, strings.Join(transcribe.Models(types.BackendWhisperCpp), ", "))
	}

	filename := transcribe.WeightsFilename(model)
	destPath := filepath.Join(d.Dir, filename)
	if _, err := os.Stat(destPath); err == nil {
		return destPath, true, nil
	}

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating models directory: %w", err)
	}

	url := strings.TrimSuffix(d.BaseURL, "/") + "/" + filename
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpx.DoWithRetry(ctx, d.client(), req, d.MaxRetries)
	if err != nil {
		return "", false, fmt.Errorf("fetching %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(d.Dir, ".download-*.tmp")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", false, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", false, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", false, fmt.Errorf("renaming temp file: %w", err)
	}
	return destPath, false, nil
}
