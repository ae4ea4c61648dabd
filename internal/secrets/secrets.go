// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API keys for remote recognition backends.
//
// Keys come from, in order: an explicit configuration value, the process
// environment (optionally primed from a .env file), and a directory of
// plain-text files where the filename is the key name and the trimmed file
// contents are the value.
//
// Supported key files: openai-api-key, anthropic-api-key, gemini-api-key.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/subosito/gotenv"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
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
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotenv exports the variables of a .env file into the process
// environment. Variables that are already set keep their values. A missing
// file is not an error.
func LoadDotenv(path string) error {
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Resolver looks up credentials across config, environment and key files.
type Resolver struct {
	// Getenv reads the environment. Nil means os.Getenv.
	Getenv func(string) string

	// Files holds the contents of the secrets directory (see Load).
	Files map[string]string
}

// Lookup returns the first non-empty value among explicit, the named
// environment variables (in order) and Files[fileKey].
func (r Resolver) Lookup(explicit, fileKey string, envVars ...string) (string, bool) {
	if v := strings.TrimSpace(explicit); v != "" {
		return v, true
	}

	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, name := range envVars {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v, true
		}
	}

	if v, ok := r.Files[fileKey]; ok && v != "" {
		return v, true
	}
	return "", false
}
