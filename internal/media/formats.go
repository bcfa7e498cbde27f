// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package media

import (
	"sort"
	"strings"
)

// supportedExtensions lists every container and codec the queue accepts.
// Files with any other extension are skipped during enumeration.
var supportedExtensions = map[string]bool{
	".mp3":  true,
	".mp4":  true,
	".mpeg": true,
	".mpg":  true,
	".mpga": true,
	".m4a":  true,
	".wav":  true,
	".webm": true,
	".mkv":  true,
	".avi":  true,
	".flv":  true,
	".mov":  true,
	".wmv":  true,
	".3gp":  true,
	".3g2":  true,
	".vob":  true,
	".flac": true,
	".aac":  true,
	".ogg":  true,
	".wma":  true,
	".ac3":  true,
	".dts":  true,
	".mmf":  true,
	".m4r":  true,
	".mp2":  true,
	".wv":   true,
	".asf":  true,
	".f4v":  true,
	".m2ts": true,
	".mts":  true,
	".rm":   true,
	".rmvb": true,
	".swf":  true,
	".wtv":  true,
}

// conversionRequired lists extensions the transcription backends cannot
// ingest directly. These are converted to mp3 before transcription.
var conversionRequired = map[string]bool{
	".mkv":  true,
	".avi":  true,
	".flv":  true,
	".mov":  true,
	".wmv":  true,
	".3gp":  true,
	".3g2":  true,
	".vob":  true,
	".flac": true,
	".aac":  true,
	".ogg":  true,
	".wma":  true,
	".ac3":  true,
	".dts":  true,
	".mmf":  true,
	".m4r":  true,
	".mp2":  true,
	".wv":   true,
	".asf":  true,
	".f4v":  true,
	".m2ts": true,
	".mts":  true,
	".rm":   true,
	".rmvb": true,
	".swf":  true,
	".wtv":  true,
}

// audioMIMETypes maps extensions that can be sent to an inline-audio API
// without re-encoding. Extensions absent from this map go through the
// mp3 converter first.
var audioMIMETypes = map[string]string{
	".mp3":  "audio/mpeg",
	".mpga": "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".aac":  "audio/aac",
	".m4a":  "audio/mp4",
}

// normalizeExt lowercases an extension and ensures a leading dot, so both
// "MP3" and ".mp3" resolve to the same table entry.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Supported reports whether files with the given extension can be queued
// for transcription.
func Supported(ext string) bool {
	return supportedExtensions[normalizeExt(ext)]
}

// NeedsConversion reports whether the given extension must be converted
// before a backend can transcribe it.
func NeedsConversion(ext string) bool {
	return conversionRequired[normalizeExt(ext)]
}

// AudioMIMEType returns the MIME type for extensions that inline-audio
// APIs accept directly, or "" when the file needs conversion first.
func AudioMIMEType(ext string) string {
	return audioMIMETypes[normalizeExt(ext)]
}

// SupportedExtensions returns the sorted list of accepted extensions.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// NativeExtensions returns the sorted list of extensions backends ingest
// without conversion.
func NativeExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		if !conversionRequired[ext] {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}
