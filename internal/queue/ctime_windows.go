// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

//go:build windows

package queue

import (
	"io/fs"
	"syscall"
	"time"
)

// changeTime returns the real file creation time Windows records.
func changeTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, st.CreationTime.Nanoseconds())
	}
	return info.ModTime()
}
