// Package envfile loads environment variables from .env files.
// Variables already set in the environment take precedence.
package envfile

import (
	"fmt"
	"os"
	"strings"
)

// LoadAll loads each file in order. Earlier files win over later ones
// because an already-set variable is never overwritten. Missing files
// are skipped.
func LoadAll(paths ...string) error {
	for _, path := range paths {
		if err := Load(path); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a .env file and sets any variables not already in the
// environment. Returns nil if the file doesn't exist.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := parseLine(line)
		if !ok {
			continue
		}
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

// parseLine extracts KEY=VALUE, handling an optional "export " prefix
// and matching single or double quotes around the value.
func parseLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}

	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}
