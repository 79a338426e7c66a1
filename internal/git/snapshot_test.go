package git

import (
	"path/filepath"
	"testing"
)

func TestWriteWorkingCopy(t *testing.T) {
	dir := newTestRepo(t)
	repo, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	// Uncommitted change that only the snapshot should see.
	writeFile(t, filepath.Join(dir, "uncommitted.txt"), "draft\n")

	tree, err := repo.WriteWorkingCopy(false)
	if err != nil {
		t.Fatalf("WriteWorkingCopy() error: %v", err)
	}
	if len(tree) != 40 {
		t.Fatalf("WriteWorkingCopy() tree = %q, want 40-char id", tree)
	}

	// The snapshot tree is a usable treeish.
	entries, err := repo.ListTree(tree)
	if err != nil {
		t.Fatalf("ListTree(snapshot) error: %v", err)
	}
	found := false
	for _, entry := range entries {
		if entry.Name == "uncommitted.txt" {
			found = true
		}
	}
	if !found {
		t.Error("snapshot tree missing uncommitted.txt")
	}

	// The primary index must be undisturbed: the new file stays
	// untracked as far as a normal status is concerned.
	out := mustGit(t, dir, "status", "--porcelain", "uncommitted.txt")
	if out != "?? uncommitted.txt" {
		t.Errorf("primary index disturbed, status = %q", out)
	}
}

func TestWriteWorkingCopyForceIncludesIgnored(t *testing.T) {
	dir := newTestRepo(t)
	repo, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	// ignored.txt matches the .gitignore in the fixture.
	writeFile(t, filepath.Join(dir, "ignored.txt"), "secret\n")

	withoutForce, err := repo.WriteWorkingCopy(false)
	if err != nil {
		t.Fatal(err)
	}
	if treeContains(t, repo, withoutForce, "ignored.txt") {
		t.Error("unforced snapshot should exclude ignored files")
	}

	withForce, err := repo.WriteWorkingCopy(true)
	if err != nil {
		t.Fatal(err)
	}
	if !treeContains(t, repo, withForce, "ignored.txt") {
		t.Error("forced snapshot should include ignored files")
	}
}

func TestDropSnapshotIndex(t *testing.T) {
	dir := newTestRepo(t)
	repo, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	// Dropping without a snapshot is a no-op, not an error.
	if err := repo.DropSnapshotIndex(); err != nil {
		t.Fatalf("DropSnapshotIndex() on absent index: %v", err)
	}

	if _, err := repo.WriteWorkingCopy(false); err != nil {
		t.Fatal(err)
	}
	if !repo.HasSnapshotIndex() {
		t.Fatal("snapshot index should exist after WriteWorkingCopy")
	}

	if err := repo.DropSnapshotIndex(); err != nil {
		t.Fatalf("DropSnapshotIndex() error: %v", err)
	}
	if repo.HasSnapshotIndex() {
		t.Error("snapshot index should be gone")
	}

	// Idempotent.
	if err := repo.DropSnapshotIndex(); err != nil {
		t.Fatalf("second DropSnapshotIndex() error: %v", err)
	}
}

func TestResolveTreeish(t *testing.T) {
	dir := newTestRepo(t)
	repo, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("real treeish passes through", func(t *testing.T) {
		got, err := repo.ResolveTreeish("HEAD", false)
		if err != nil {
			t.Fatalf("ResolveTreeish() error: %v", err)
		}
		if got != "HEAD" {
			t.Errorf("ResolveTreeish(HEAD) = %q, want passthrough", got)
		}
	})

	t.Run("working copy sentinel snapshots", func(t *testing.T) {
		writeFile(t, filepath.Join(dir, "wip.txt"), "wip\n")
		got, err := repo.ResolveTreeish(WorkingCopy, false)
		if err != nil {
			t.Fatalf("ResolveTreeish(WC) error: %v", err)
		}
		if len(got) != 40 {
			t.Errorf("ResolveTreeish(WC) = %q, want tree id", got)
		}
		if !treeContains(t, repo, got, "wip.txt") {
			t.Error("working copy snapshot missing wip.txt")
		}
	})

	t.Run("index sentinel writes staged state", func(t *testing.T) {
		writeFile(t, filepath.Join(dir, "staged.txt"), "staged\n")
		mustGit(t, dir, "add", "staged.txt")

		got, err := repo.ResolveTreeish(Index, false)
		if err != nil {
			t.Fatalf("ResolveTreeish(INDEX) error: %v", err)
		}
		if !treeContains(t, repo, got, "staged.txt") {
			t.Error("index tree missing staged.txt")
		}
	})
}

func treeContains(t *testing.T, repo *Repository, treeish, name string) bool {
	t.Helper()
	entries, err := repo.ListTree(treeish)
	if err != nil {
		t.Fatalf("ListTree(%s) error: %v", treeish, err)
	}
	for _, entry := range entries {
		if entry.Name == name {
			return true
		}
	}
	return false
}
