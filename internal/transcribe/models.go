// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package transcribe

import "github.com/gabriele-ciccotelli/MultiFormatTranscriber/pkg/types"

// whisperCppModels lists the ggml weight sets the local backend can run,
// smallest first.
var whisperCppModels = []string{"tiny", "base", "small", "medium", "large-v2", "large-v3"}

// openAIModels lists the transcription models the OpenAI API serves.
var openAIModels = []string{"whisper-1", "gpt-4o-transcribe", "gpt-4o-mini-transcribe"}

// geminiModels lists Gemini models suited to audio transcription.
var geminiModels = []string{"gemini-2.5-flash", "gemini-2.5-pro"}

// Models returns the known model names for a backend, default first for
// the API backends.
func Models(b types.Backend) []string {
	var src []string
	switch b {
	case types.BackendWhisperCpp:
		src = whisperCppModels
	case types.BackendOpenAI:
		src = openAIModels
	case types.BackendGemini:
		src = geminiModels
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// DefaultModel returns the model used when the configuration names none.
func DefaultModel(b types.Backend) string {
	switch b {
	case types.BackendWhisperCpp:
		return "base"
	case types.BackendOpenAI:
		return "whisper-1"
	case types.BackendGemini:
		return "gemini-2.5-flash"
	}
	return ""
}

// KnownModel reports whether name appears in the backend's model list.
// The API backends accept names beyond the published list, so a miss is
// only fatal for the local backend.
func KnownModel(b types.Backend, name string) bool {
	for _, m := range Models(b) {
		if m == name {
			return true
		}
	}
	return false
}
