package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestUnpackCommand(t *testing.T) {
	if _, err := exec.LookPath("tar"); err != nil {
		t.Skip("tar not installed")
	}
	t.Setenv("TREEPACK_CONFIG_HOME", t.TempDir())

	repo := newTestRepo(t)
	tarball := filepath.Join(t.TempDir(), "pkg.tar.gz")
	execCommand(t, "archive", "-C", repo, "-o", tarball, "--prefix", "pkg")

	dest := filepath.Join(t.TempDir(), "out")
	out := execCommand(t, "unpack", tarball, "-d", dest, "--json")

	result := parseJSON(t, out)
	if result["dest"] != dest {
		t.Errorf("dest = %v, want %q", result["dest"], dest)
	}
	if _, err := os.Stat(filepath.Join(dest, "pkg", "test.txt")); err != nil {
		t.Errorf("unpacked file missing: %v", err)
	}
}
