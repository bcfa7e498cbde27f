// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package modeldl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/httpx"
)

func init() {
	// Use a tiny base delay so retry tests finish quickly.
	httpx.RetryBaseDelay = 1 * time.Millisecond
}

func TestDownload(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/ggml-base.bin" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("weights payload"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	d := &Downloader{BaseURL: ts.URL, Dir: dir, MaxRetries: 3}

	path, skipped, err := d.Download(context.Background(), "base")
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, filepath.Join(dir, "ggml-base.bin"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "weights payload", string(data))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDownloadSkipsExisting(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("weights"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	existing := filepath.Join(dir, "ggml-tiny.bin")
	require.NoError(t, os.WriteFile(existing, []byte("old weights"), 0o644))

	d := &Downloader{BaseURL: ts.URL, Dir: dir, MaxRetries: 3}
	path, skipped, err := d.Download(context.Background(), "tiny")
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Equal(t, existing, path)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "existing weights must not be re-fetched")

	data, _ := os.ReadFile(existing)
	assert.Equal(t, "old weights", string(data))
}

func TestDownloadUnknownModel(t *testing.T) {
	d := &Downloader{BaseURL: "http://unused.invalid", Dir: t.TempDir()}
	_, _, err := d.Download(context.Background(), "colossal-v1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model")
}

func TestDownloadHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such file", http.StatusNotFound)
	}))
	defer ts.Close()

	dir := t.TempDir()
	d := &Downloader{BaseURL: ts.URL, Dir: dir, MaxRetries: 3}

	_, _, err := d.Download(context.Background(), "base")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "failed download must leave no files behind")
}

func TestDownloadRetriesTransientFailure(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("weights"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	d := &Downloader{BaseURL: ts.URL, Dir: dir, MaxRetries: 3}

	path, skipped, err := d.Download(context.Background(), "small")
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "weights", string(data))
}

func TestDownloadCreatesModelsDir(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("weights"))
	}))
	defer ts.Close()

	dir := filepath.Join(t.TempDir(), "models")
	d := &Downloader{BaseURL: ts.URL, Dir: dir, MaxRetries: 3}

	path, _, err := d.Download(context.Background(), "medium")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("weights file missing: %v", err)
	}
}
