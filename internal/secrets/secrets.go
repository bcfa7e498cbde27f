// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file is one secret: the filename is the key name and the file
// contents (trimmed) are the value.
//
// Supported key files: OPENAI_API_KEY, GEMINI_API_KEY.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// keyName matches filenames shaped like environment variables. Anything
// else in the directory (notes, dotfiles, editor droppings) is ignored
// rather than exported into the process environment.
var keyName = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// Load reads the key files in dir and returns a map of filename to
// trimmed contents. A missing directory is not an error; unreadable
// files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !keyName.MatchString(entry.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[entry.Name()] = value
		}
	}

	return secrets, nil
}

// Apply exports loaded secrets into the process environment so they reach
// the same lookup path as real environment variables. Values already set
// in the environment win over key files.
func Apply(secrets map[string]string) {
	for key, value := range secrets {
		if os.Getenv(key) != "" {
			continue
		}
		os.Setenv(key, value)
	}
}
