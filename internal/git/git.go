package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/treepack/treepack/internal/output"
)

// Run executes a git command with the given arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func Run(args ...string) (string, error) {
	return RunContext(context.Background(), args...)
}

// RunContext executes a git command with the given context and arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func RunContext(ctx context.Context, args ...string) (string, error) {
	return RunInDirContext(ctx, "", args...)
}

// RunInDir executes a git command in the given working directory.
// An empty dir runs in the current directory.
func RunInDir(dir string, args ...string) (string, error) {
	return RunInDirContext(context.Background(), dir, args...)
}

// RunInDirContext executes a git command with an explicit working
// directory. The directory is passed to the child process; the caller's
// working directory is never touched.
func RunInDirContext(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Check if git is not found
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		// Git command failed - include stderr in message
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsRepo checks if the current directory is inside a git repository.
func IsRepo() bool {
	_, err := Run("rev-parse", "--git-dir")
	return err == nil
}

// RepoRoot returns the root directory of the current git repository.
// Returns an error if not in a git repository.
func RepoRoot() (string, error) {
	root, err := Run("rev-parse", "--show-toplevel")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return root, nil
}

// CurrentBranch returns the name of the current branch.
// Returns an error if not in a git repository or HEAD is detached.
func CurrentBranch() (string, error) {
	branch, err := Run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get current branch", err)
	}
	return branch, nil
}

// HEAD returns the full SHA of the current HEAD commit.
// Returns an error if not in a git repository or no commits exist.
func HEAD() (string, error) {
	sha, err := Run("rev-parse", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get HEAD", err)
	}
	return sha, nil
}

// LatestTag returns the most recent tag reachable from HEAD in dir.
// Returns an empty string without error when no tag exists.
func LatestTag(dir string) (string, error) {
	tag, err := RunInDir(dir, "describe", "--tags", "--abbrev=0")
	if err != nil {
		var exitErr *output.ExitError
		if errors.As(err, &exitErr) &&
			(strings.Contains(exitErr.Message, "No names found") ||
				strings.Contains(exitErr.Message, "cannot describe")) {
			// No tags yet is an answer, not a failure.
			return "", nil
		}
		return "", err
	}
	return tag, nil
}

// HasUncommittedChanges returns true if the working tree has staged or
// unstaged changes.
func HasUncommittedChanges(dir string) bool {
	out, err := RunInDir(dir, "status", "--porcelain")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) != ""
}
