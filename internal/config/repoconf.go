package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// RepoConfFile is the per-repository override file, looked up at the
// repository root.
const RepoConfFile = ".treepack.conf"

// Load resolves the effective settings for a repository: built-in
// defaults, then the global config file, then the repository's
// override file. Command-line flags are applied by the caller on top.
func Load(repoRoot string) (Settings, error) {
	settings, err := LoadGlobal()
	if err != nil {
		return settings, err
	}
	if repoRoot == "" {
		return settings, nil
	}
	return applyRepoConf(settings, filepath.Join(repoRoot, RepoConfFile))
}

// applyRepoConf layers the INI override file onto settings. Only keys
// present in the file change anything.
func applyRepoConf(settings Settings, path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return settings, fmt.Errorf("parsing %s: %w", path, err)
	}

	arc := cfg.Section("archive")
	if key := arc.Key("compressor"); key.String() != "" {
		settings.Archive.Compressor = key.String()
	}
	if arc.HasKey("level") {
		level, err := arc.Key("level").Int()
		if err != nil {
			return settings, fmt.Errorf("%s: archive.level: %w", path, err)
		}
		settings.Archive.Level = level
	}
	if arc.HasKey("options") {
		settings.Archive.Options = arc.Key("options").Strings(",")
	}
	if arc.HasKey("submodules") {
		subs, err := arc.Key("submodules").Bool()
		if err != nil {
			return settings, fmt.Errorf("%s: archive.submodules: %w", path, err)
		}
		settings.Archive.Submodules = subs
	}
	if key := arc.Key("prefix"); key.String() != "" {
		settings.Archive.Prefix = key.String()
	}

	exp := cfg.Section("export")
	if key := exp.Key("dir"); key.String() != "" {
		settings.Export.Dir = key.String()
	}
	if exp.HasKey("submodules") {
		subs, err := exp.Key("submodules").Bool()
		if err != nil {
			return settings, fmt.Errorf("%s: export.submodules: %w", path, err)
		}
		settings.Export.Submodules = subs
	}

	return settings, nil
}
