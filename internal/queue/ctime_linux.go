// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

//go:build linux

package queue

import (
	"io/fs"
	"syscall"
	"time"
)

// changeTime returns the inode change time, the closest Linux gets to a
// creation timestamp through stat.
func changeTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Unix())
	}
	return info.ModTime()
}
