// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

// Package watch monitors a directory and hands new media files to a
// handler once they have finished being written.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/media"
	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"
)

// Handler processes one settled file.
type Handler func(ctx context.Context, path string) error

// Watcher reacts to files appearing in a single directory. Files are
// processed one at a time, in arrival order, by a worker separate from
// the notification loop.
type Watcher struct {
	dir            string
	settleInterval time.Duration
	maxSettle      time.Duration
	log            zerolog.Logger
	handler        Handler
	fw             *fsnotify.Watcher
}

// New builds a watcher for dir. The directory must exist.
func New(dir string, cfg types.WatchConfig, log zerolog.Logger, handler Handler) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path %s is not a directory", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("adding watch path: %w", err)
	}

	return &Watcher{
		dir:            dir,
		settleInterval: cfg.SettleInterval,
		maxSettle:      cfg.MaxSettle,
		log:            log,
		handler:        handler,
		fw:             fw,
	}, nil
}

// Close stops the underlying notifier.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

// Run processes create events until the context is cancelled. It returns
// the context error on shutdown, after the in-flight file finishes.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Info().Str("dir", w.dir).Msg("watching for new media files")

	pending := make(chan string, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for path := range pending {
			if err := w.process(ctx, path); err != nil && ctx.Err() == nil {
				w.log.Error().Err(err).Str("file", filepath.Base(path)).Msg("processing failed")
			}
		}
	}()

	defer func() {
		close(pending)
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("watcher stopping")
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.wants(event.Name) {
				w.log.Debug().Str("file", filepath.Base(event.Name)).Msg("ignoring file")
				continue
			}
			w.log.Info().Str("file", filepath.Base(event.Name)).Msg("new media file detected")
			select {
			case pending <- event.Name:
			default:
				w.log.Warn().Str("file", filepath.Base(event.Name)).Msg("queue full, dropping file")
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}

// wants filters events down to supported media files. Hidden files and
// partial downloads are ignored.
func (w *Watcher) wants(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return media.Supported(filepath.Ext(base))
}

func (w *Watcher) process(ctx context.Context, path string) error {
	if err := w.waitSettle(ctx, path); err != nil {
		return err
	}
	return w.handler(ctx, path)
}

// waitSettle polls the file size until it stops changing, so a file
// still being copied in is not transcribed half-written.
func (w *Watcher) waitSettle(ctx context.Context, path string) error {
	deadline := time.Now().Add(w.maxSettle)
	ticker := time.NewTicker(w.settleInterval)
	defer ticker.Stop()

	lastSize := int64(-1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("file vanished while settling: %w", err)
			}
			size := info.Size()
			if size > 0 && size == lastSize {
				return nil
			}
			lastSize = size
			if time.Now().After(deadline) {
				return fmt.Errorf("%s still growing after %s", filepath.Base(path), w.maxSettle)
			}
		}
	}
}
