// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

//go:build !linux && !darwin && !windows

package queue

import (
	"io/fs"
	"time"
)

// changeTime falls back to the modification time on platforms without a
// portable creation timestamp.
func changeTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
