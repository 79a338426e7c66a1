// Package changelog derives release versions and records changelog
// entries.
package changelog

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/treepack/treepack/internal/command"
	"github.com/treepack/treepack/internal/git"
	"github.com/treepack/treepack/internal/output"
)

// Bump increments one part of a semantic version. part is "major",
// "minor" or "patch". A leading "v" on current is preserved.
func Bump(current, part string) (string, error) {
	hadPrefix := strings.HasPrefix(current, "v")

	ver, err := semver.NewVersion(current)
	if err != nil {
		return "", output.NewUserError(fmt.Sprintf("invalid version %q: %v", current, err))
	}

	var next semver.Version
	switch part {
	case "major":
		next = ver.IncMajor()
	case "minor":
		next = ver.IncMinor()
	case "patch":
		next = ver.IncPatch()
	default:
		return "", output.NewUserError(fmt.Sprintf("unknown version part %q (use major, minor or patch)", part))
	}

	result := next.String()
	if hadPrefix {
		result = "v" + result
	}
	return result, nil
}

// CurrentVersion returns the latest release tag in dir, or "0.0.0"
// when the repository has no tags yet.
func CurrentVersion(dir string) (string, error) {
	tag, err := git.LatestTag(dir)
	if err != nil {
		return "", err
	}
	if tag == "" {
		return "0.0.0", nil
	}
	return tag, nil
}

// Edit opens a changelog entry for version in dir. With an empty msg
// the changelog tool starts an interactive editor.
func Edit(dir, version, msg string) error {
	return command.DebChangelog(version, msg).InDir(dir).Run()
}
