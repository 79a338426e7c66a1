// Package config resolves treepack settings from the global config file
// and per-repository overrides.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the treepack configuration directory.
//
// Resolution:
//   - $TREEPACK_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/treepack if set (respects XDG on any platform)
//   - %AppData%/treepack on Windows
//   - ~/.config/treepack on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("TREEPACK_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "treepack")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "treepack")
		}
	}

	// macOS and Linux: ~/.config/treepack
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "treepack")
}
