package main

import (
	"path/filepath"
	"testing"
)

func TestStatusCommand(t *testing.T) {
	repo := newTestRepo(t)

	head := runGitOutput(t, repo, "rev-parse", "HEAD")
	branch := runGitOutput(t, repo, "rev-parse", "--abbrev-ref", "HEAD")

	out := execCommand(t, "status", "-C", repo, "--json")
	result := parseJSON(t, out)

	wantFields := map[string]any{
		"repo":               filepath.Base(repo),
		"branch":             branch,
		"head":               head,
		"submodules":         float64(0), // JSON numbers are float64
		"dirty":              false,
		"has_snapshot_index": false,
	}
	for key, want := range wantFields {
		got, ok := result[key]
		if !ok {
			t.Errorf("missing field %q in output", key)
			continue
		}
		if got != want {
			t.Errorf("field %q = %v (%T), want %v (%T)", key, got, got, want, want)
		}
	}
}

func TestSnapshotCommand(t *testing.T) {
	repo := newTestRepo(t)

	out := execCommand(t, "snapshot", "-C", repo, "--json")
	result := parseJSON(t, out)

	tree, _ := result["tree"].(string)
	if len(tree) != 40 {
		t.Errorf("tree = %q, want a 40-char sha", tree)
	}

	statusOut := parseJSON(t, execCommand(t, "status", "-C", repo, "--json"))
	if statusOut["has_snapshot_index"] != true {
		t.Error("snapshot index not reported after snapshot")
	}

	execCommand(t, "snapshot", "drop", "-C", repo)
	statusOut = parseJSON(t, execCommand(t, "status", "-C", repo, "--json"))
	if statusOut["has_snapshot_index"] != false {
		t.Error("snapshot index still reported after drop")
	}

	// Dropping twice is fine.
	execCommand(t, "snapshot", "drop", "-C", repo)
}
