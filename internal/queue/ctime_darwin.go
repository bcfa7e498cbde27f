// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

//go:build darwin

package queue

import (
	"io/fs"
	"syscall"
	"time"
)

// changeTime returns the inode change time, matching what stat-based
// tools report as the creation criterion on macOS.
func changeTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctimespec.Unix())
	}
	return info.ModTime()
}
