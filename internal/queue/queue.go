// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

// Package queue enumerates the media files of a transcription run and
// orders them by the user-selected criterion.
package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/gabriele-ciccotelli/MultiFormatTranscriber/internal/media"
)

// Entry is one file waiting to be transcribed.
type Entry struct {
	// Path is the file location as resolved during enumeration.
	Path string
	// Name is the base filename, used for display and number extraction.
	Name string
	// ModTime is the file's last modification time.
	ModTime time.Time
	// ChangeTime is the platform's closest notion of creation time: the
	// real creation timestamp on Windows, the inode change time on Unix.
	ChangeTime time.Time
}

// List enumerates the files of a run. A directory input yields every
// supported file directly inside it (subdirectories are not descended
// into); a file input yields that single file. A single file with an
// unsupported extension is an error, while unsupported files inside a
// directory are silently skipped.
func List(input string) ([]Entry, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", input, err)
	}

	if !info.IsDir() {
		if !media.Supported(filepath.Ext(input)) {
			return nil, fmt.Errorf("unsupported file type %s", filepath.Ext(input))
		}
		return []Entry{newEntry(input, info)}, nil
	}

	dirEntries, err := os.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", input, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !media.Supported(filepath.Ext(de.Name())) {
			continue
		}
		fi, err := de.Info()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", de.Name(), err)
		}
		entries = append(entries, newEntry(filepath.Join(input, de.Name()), fi))
	}
	return entries, nil
}

func newEntry(path string, info os.FileInfo) Entry {
	return Entry{
		Path:       path,
		Name:       filepath.Base(path),
		ModTime:    info.ModTime(),
		ChangeTime: changeTime(info),
	}
}

// numberPattern matches the first parenthesized integer in a filename,
// e.g. "lecture (12).mp3".
var numberPattern = regexp.MustCompile(`\((\d+)\)`)

// extractNumber returns the ordering number embedded in a filename and
// whether one was found.
func extractNumber(name string) (int, bool) {
	m := numberPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Sort orders entries in place according to the criterion. Ordering is
// stable, so files that compare equal keep their enumeration order.
// OrderAny leaves the enumeration order untouched.
func Sort(entries []Entry, c Criterion) {
	switch c {
	case OrderCreatedAsc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ChangeTime.Before(entries[j].ChangeTime)
		})
	case OrderCreatedDesc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[j].ChangeTime.Before(entries[i].ChangeTime)
		})
	case OrderModifiedAsc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ModTime.Before(entries[j].ModTime)
		})
	case OrderModifiedDesc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[j].ModTime.Before(entries[i].ModTime)
		})
	case OrderNumbered:
		sort.SliceStable(entries, func(i, j int) bool {
			ni, oki := extractNumber(entries[i].Name)
			nj, okj := extractNumber(entries[j].Name)
			// Files without a number sort after every numbered file.
			if oki != okj {
				return oki
			}
			if !oki {
				return false
			}
			return ni < nj
		})
	}
}
