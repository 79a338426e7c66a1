package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Archive holds the tarball-assembly defaults.
type Archive struct {
	// Compressor names the compression type: "gzip", "zstd", or an
	// external binary such as "xz".
	Compressor string `yaml:"compressor"`
	// Level is the compression level; -1 selects the compressor's
	// default.
	Level int `yaml:"level"`
	// Options are extra arguments for an external compressor binary.
	Options []string `yaml:"options"`
	// Submodules includes bound submodule trees in the tarball.
	Submodules bool `yaml:"submodules"`
	// Prefix is prepended to every archive member.
	Prefix string `yaml:"prefix"`
}

// Export holds the tree-export defaults.
type Export struct {
	// Dir is the default parent directory for exported trees.
	Dir string `yaml:"dir"`
	// Submodules includes bound submodule trees in the export.
	Submodules bool `yaml:"submodules"`
}

// Settings is the merged treepack configuration.
type Settings struct {
	Archive Archive `yaml:"archive"`
	Export  Export  `yaml:"export"`
}

// Defaults returns the built-in settings used when no config file
// exists.
func Defaults() Settings {
	return Settings{
		Archive: Archive{
			Compressor: "gzip",
			Level:      -1,
		},
		Export: Export{
			Dir: "../build-area",
		},
	}
}

// globalFile is the YAML config below Dir().
const globalFile = "config.yaml"

// LoadGlobal reads the global config file, falling back to Defaults
// when it does not exist.
func LoadGlobal() (Settings, error) {
	return loadGlobalFrom(filepath.Join(Dir(), globalFile))
}

func loadGlobalFrom(path string) (Settings, error) {
	settings := Defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parsing %s: %w", path, err)
	}
	return settings, nil
}
