package git

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/treepack/treepack/internal/output"
)

// newTestRepo creates a git repository in a temp dir with one commit
// containing a top-level file, a subdirectory and a dotfile. Skips the
// test when git is unavailable.
func newTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	mustGit(t, dir, "init", "-q")
	mustGit(t, dir, "config", "user.email", "test@example.com")
	mustGit(t, dir, "config", "user.name", "Test")
	mustGit(t, dir, "config", "commit.gpgsign", "false")

	writeFile(t, filepath.Join(dir, "README.md"), "hello\n")
	writeFile(t, filepath.Join(dir, ".gitignore"), "ignored.txt\n")
	writeFile(t, filepath.Join(dir, "src", "main.c"), "int main(void){return 0;}\n")

	mustGit(t, dir, "add", ".")
	mustGit(t, dir, "commit", "-q", "-m", "initial")
	return dir
}

func mustGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := RunInDir(dir, args...)
	if err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
	return out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantErr       bool
		checkExitCode int
	}{
		{
			name:    "git version succeeds",
			args:    []string{"version"},
			wantErr: false,
		},
		{
			name:          "invalid git command",
			args:          []string{"invalid-command-that-does-not-exist"},
			wantErr:       true,
			checkExitCode: output.ExitSystemError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			out, runErr := Run(testCase.args...)
			if testCase.wantErr {
				if runErr == nil {
					t.Errorf("Run() expected error, got nil")
					return
				}
				var exitErr *output.ExitError
				if !errors.As(runErr, &exitErr) {
					t.Errorf("Run() error should be *output.ExitError, got %T", runErr)
					return
				}
				if testCase.checkExitCode != 0 && exitErr.Code != testCase.checkExitCode {
					t.Errorf("Run() exit code = %d, want %d", exitErr.Code, testCase.checkExitCode)
				}
			} else {
				if runErr != nil {
					t.Errorf("Run() unexpected error: %v", runErr)
					return
				}
				if out == "" {
					t.Error("Run() expected non-empty output for 'git version'")
				}
			}
		})
	}
}

func TestRunInDir(t *testing.T) {
	dir := newTestRepo(t)

	out, err := RunInDir(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		t.Fatalf("RunInDir() error: %v", err)
	}
	resolved, _ := filepath.EvalSymlinks(dir)
	if out != dir && out != resolved {
		t.Errorf("RunInDir() toplevel = %q, want %q", out, dir)
	}
}

func TestLatestTag(t *testing.T) {
	dir := newTestRepo(t)

	t.Run("no tags yet", func(t *testing.T) {
		tag, err := LatestTag(dir)
		if err != nil {
			t.Fatalf("LatestTag() error: %v", err)
		}
		if tag != "" {
			t.Errorf("LatestTag() = %q, want empty", tag)
		}
	})

	t.Run("returns most recent tag", func(t *testing.T) {
		mustGit(t, dir, "tag", "v1.4.0")
		tag, err := LatestTag(dir)
		if err != nil {
			t.Fatalf("LatestTag() error: %v", err)
		}
		if tag != "v1.4.0" {
			t.Errorf("LatestTag() = %q, want %q", tag, "v1.4.0")
		}
	})
}

func TestHasUncommittedChanges(t *testing.T) {
	dir := newTestRepo(t)

	if HasUncommittedChanges(dir) {
		t.Error("fresh commit should have a clean tree")
	}

	writeFile(t, filepath.Join(dir, "README.md"), "changed\n")
	if !HasUncommittedChanges(dir) {
		t.Error("modified file should be reported")
	}
}
