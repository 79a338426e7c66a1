package mcp

import (
	"compress/gzip"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// newToolRepo builds a small committed repository for handler tests.
func newToolRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	mustGit(t, dir, "init", "-q")
	mustGit(t, dir, "config", "user.name", "Test")
	mustGit(t, dir, "config", "user.email", "test@example.com")
	mustGit(t, dir, "config", "commit.gpgsign", "false")

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mustGit(t, dir, "add", ".")
	mustGit(t, dir, "commit", "-q", "-m", "initial")
	return dir
}

func mustGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func TestHandleStatus(t *testing.T) {
	dir := newToolRepo(t)

	_, out, err := handleStatus(context.Background(), nil, StatusInput{Dir: dir})
	if err != nil {
		t.Fatalf("handleStatus() error: %v", err)
	}
	if out.Head == "" {
		t.Error("status HEAD is empty")
	}
	if out.Dirty {
		t.Error("fresh repo reported dirty")
	}
	if out.HasSnapshotIndex {
		t.Error("fresh repo reported a snapshot index")
	}

	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, out, err = handleStatus(context.Background(), nil, StatusInput{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Dirty {
		t.Error("repo with untracked file reported clean")
	}
}

func TestHandleSnapshotAndDrop(t *testing.T) {
	dir := newToolRepo(t)

	_, snap, err := handleSnapshot(context.Background(), nil, SnapshotInput{Dir: dir})
	if err != nil {
		t.Fatalf("handleSnapshot() error: %v", err)
	}
	if len(snap.Tree) != 40 {
		t.Errorf("tree id = %q, want a 40-char sha", snap.Tree)
	}

	_, statusOut, err := handleStatus(context.Background(), nil, StatusInput{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if !statusOut.HasSnapshotIndex {
		t.Error("snapshot index missing after snapshot")
	}

	_, dropOut, err := handleDropSnapshot(context.Background(), nil, DropSnapshotInput{Dir: dir})
	if err != nil {
		t.Fatalf("handleDropSnapshot() error: %v", err)
	}
	if !dropOut.Dropped {
		t.Error("drop reported failure")
	}

	// Dropping again is a no-op, not an error.
	if _, _, err := handleDropSnapshot(context.Background(), nil, DropSnapshotInput{Dir: dir}); err != nil {
		t.Errorf("second drop errored: %v", err)
	}
}

func TestHandleArchive(t *testing.T) {
	t.Setenv("TREEPACK_CONFIG_HOME", t.TempDir())
	dir := newToolRepo(t)
	outPath := filepath.Join(t.TempDir(), "repo.tar.gz")

	_, out, err := handleArchive(context.Background(), nil, ArchiveInput{
		Dir:    dir,
		Output: outPath,
		Prefix: "repo-1.0",
	})
	if err != nil {
		t.Fatalf("handleArchive() error: %v", err)
	}
	if out.Output != outPath {
		t.Errorf("output = %q, want %q", out.Output, outPath)
	}
	if out.Treeish != "HEAD" {
		t.Errorf("resolved treeish = %q, want HEAD passed through", out.Treeish)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := gzip.NewReader(f); err != nil {
		t.Errorf("output is not gzip: %v", err)
	}
}

func TestHandleExport(t *testing.T) {
	t.Setenv("TREEPACK_CONFIG_HOME", t.TempDir())
	dir := newToolRepo(t)
	exportDir := filepath.Join(t.TempDir(), "repo-1.0")

	_, out, err := handleExport(context.Background(), nil, ExportInput{
		Dir:       dir,
		ExportDir: exportDir,
	})
	if err != nil {
		t.Fatalf("handleExport() error: %v", err)
	}
	if out.ExportDir != exportDir {
		t.Errorf("export dir = %q", out.ExportDir)
	}
	if _, err := os.Stat(filepath.Join(exportDir, "README.md")); err != nil {
		t.Errorf("exported file missing: %v", err)
	}

	// Missing export_dir is rejected up front.
	if _, _, err := handleExport(context.Background(), nil, ExportInput{Dir: dir}); err == nil {
		t.Error("handleExport() accepted empty export_dir")
	}
}
