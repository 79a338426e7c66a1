package git

import "github.com/treepack/treepack/internal/command"

// The VCS command set: fire-and-forget porcelain operations built on the
// command invoker. Each is a fixed verb with minimal argument shaping and
// an operation-specific failure message; none inspects command output.

// gitCmd builds an invoker command for a git verb running in dir.
func gitCmd(dir, runError string, args ...string) command.Command {
	return command.New("git", args...).InDir(dir).WithRunError(runError)
}

// InitRepo initializes a new repository in dir.
func InitRepo(dir string) error {
	return gitCmd(dir, "couldn't init git repository", "init").Run()
}

// CreateBranch creates a new branch.
func CreateBranch(dir, branch string) error {
	return gitCmd(dir, "couldn't create branch "+branch, "branch").Run(branch)
}

// Checkout switches to the given branch.
func Checkout(dir, branch string) error {
	return gitCmd(dir, "couldn't switch to branch "+branch, "checkout").Run(branch)
}

// Tag creates a tag at HEAD.
func Tag(dir, tag string) error {
	return gitCmd(dir, "couldn't create tag "+tag, "tag").Run(tag)
}

// Add stages the given paths.
func Add(dir string, paths ...string) error {
	return gitCmd(dir, "couldn't add files", "add").Run(paths...)
}

// CommitAll commits all changed files. The message flag is omitted
// entirely, not passed empty, when msg is "" so git opens the editor.
func CommitAll(dir, msg string) error {
	cmd := gitCmd(dir, "couldn't commit changes", "commit", "-a")
	if msg != "" {
		return cmd.Run("-m", msg)
	}
	return cmd.Run()
}

// Pull fetches and merges branch from the given remote.
func Pull(dir, remote, branch string) error {
	return gitCmd(dir, "couldn't pull "+branch+" from "+remote, "pull").Run(remote, branch)
}
