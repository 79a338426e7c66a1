package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/treepack/treepack/internal/command"
	"github.com/treepack/treepack/internal/output"
)

// Repository is a handle on a git working tree.
type Repository struct {
	// Dir is the repository's top-level working directory.
	Dir string
}

// Submodule describes a nested repository bound into the parent tree.
type Submodule struct {
	Path   string // path relative to the superproject root, as recorded
	Commit string // bound commit in the submodule's history
}

// TreeEntry is one line of git ls-tree output.
type TreeEntry struct {
	Mode string
	Type string // "blob", "tree" or "commit"
	SHA  string
	Name string
}

// Open returns a Repository rooted at the repository containing dir.
func Open(dir string) (*Repository, error) {
	root, err := RunInDir(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, output.NewSystemErrorWithCause("not in a git repository: "+dir, err)
	}
	return &Repository{Dir: root}, nil
}

// run executes a git command inside the repository, with optional extra
// environment entries, capturing stdout.
func (r *Repository) run(env []string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Archive exports treeish as a tar archive written to the output path.
// An empty dir exports from the repository root; a submodule's directory
// can be passed to export its tree instead. Optional paths restrict the
// archive to those entries.
func (r *Repository) Archive(prefix, outputPath, treeish, dir string, paths ...string) error {
	args := []string{"archive", "--format=tar", "--prefix=" + prefix, "-o", outputPath, treeish}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}

	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	} else {
		cmd.Dir = r.Dir
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return output.NewSystemErrorWithCause(
			fmt.Sprintf("git archive of %s failed: %s", treeish, errMsg), err)
	}
	return nil
}

// StartArchive starts `git archive --format=tar` for treeish and returns
// the raw tar stream plus a wait function. The wait function must be
// called after the stream has been drained; it reports the archive
// command's final status. An empty dir exports from the repository root.
func (r *Repository) StartArchive(ctx context.Context, prefix, treeish, dir string, paths ...string) (io.ReadCloser, func() error, error) {
	args := []string{"archive", "--format=tar", "--prefix=" + prefix, treeish}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	} else {
		cmd.Dir = r.Dir
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, output.NewSystemErrorWithCause("couldn't open git archive pipe", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, output.NewSystemErrorWithCause("couldn't start git archive", err)
	}

	wait := func() error {
		if err := cmd.Wait(); err != nil {
			errMsg := strings.TrimSpace(stderr.String())
			if errMsg == "" {
				errMsg = err.Error()
			}
			return output.NewSystemErrorWithCause(
				fmt.Sprintf("git archive of %s failed: %s", treeish, errMsg), err)
		}
		return nil
	}
	return stdout, wait, nil
}

// Submodules returns the submodules bound into treeish, in the order git
// reports them.
func (r *Repository) Submodules(treeish string) ([]Submodule, error) {
	out, err := r.run(nil, "ls-tree", "-r", "-z", treeish)
	if err != nil {
		return nil, err
	}

	var subs []Submodule
	for _, entry := range parseTreeEntries(out) {
		if entry.Type == "commit" {
			subs = append(subs, Submodule{Path: entry.Name, Commit: entry.SHA})
		}
	}
	return subs, nil
}

// ListTree returns the top-level entries of treeish.
func (r *Repository) ListTree(treeish string) ([]TreeEntry, error) {
	out, err := r.run(nil, "ls-tree", "-z", treeish)
	if err != nil {
		return nil, err
	}
	return parseTreeEntries(out), nil
}

// HasSubmodules reports whether the working tree carries a .gitmodules
// file.
func (r *Repository) HasSubmodules() bool {
	_, err := os.Stat(filepath.Join(r.Dir, ".gitmodules"))
	return err == nil
}

// UpdateSubmodules checks out all submodules at their bound commits.
// Git's own progress output is passed through to the user.
func (r *Repository) UpdateSubmodules() error {
	return command.New("git", "submodule", "update", "--init", "--recursive").
		InDir(r.Dir).
		WithRunError("couldn't update submodules").
		Run()
}

// AddFiles stages path (recursively) into the given index file. The
// primary index is used when indexFile is empty. With force set,
// otherwise-ignored files are included too.
func (r *Repository) AddFiles(path string, force bool, indexFile string) error {
	args := []string{"add"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, path)

	var env []string
	if indexFile != "" {
		env = []string{"GIT_INDEX_FILE=" + indexFile}
	}
	if _, err := r.run(env, args...); err != nil {
		return output.NewSystemErrorWithCause("couldn't add files", err)
	}
	return nil
}

// WriteTree converts the given index file into a tree object and returns
// its id. The primary index is used when indexFile is empty.
func (r *Repository) WriteTree(indexFile string) (string, error) {
	var env []string
	if indexFile != "" {
		env = []string{"GIT_INDEX_FILE=" + indexFile}
	}
	tree, err := r.run(env, "write-tree")
	if err != nil {
		return "", output.NewSystemErrorWithCause("couldn't write tree", err)
	}
	return tree, nil
}

// parseTreeEntries parses NUL-terminated ls-tree output.
// Each record is "<mode> <type> <sha>\t<name>".
func parseTreeEntries(out string) []TreeEntry {
	var entries []TreeEntry
	for _, record := range strings.Split(out, "\x00") {
		if record == "" {
			continue
		}
		meta, name, found := strings.Cut(record, "\t")
		if !found {
			continue
		}
		fields := strings.Fields(meta)
		if len(fields) != 3 {
			continue
		}
		entries = append(entries, TreeEntry{
			Mode: fields[0],
			Type: fields[1],
			SHA:  fields[2],
			Name: name,
		})
	}
	return entries
}
