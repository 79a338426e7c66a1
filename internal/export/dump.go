package export

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/treepack/treepack/internal/archive"
	"github.com/treepack/treepack/internal/git"
)

// Backend is the slice of the version-control interface the exporter
// needs.
type Backend interface {
	StartArchive(ctx context.Context, prefix, treeish, dir string, paths ...string) (io.ReadCloser, func() error, error)
	ListTree(treeish string) ([]git.TreeEntry, error)
	Submodules(treeish string) ([]git.Submodule, error)
	HasSubmodules() bool
	UpdateSubmodules() error
}

// Options configures one tree dump.
type Options struct {
	Treeish        string
	ExportDir      string // destination directory; its base name becomes the prefix
	WithSubmodules bool
	Recursive      bool
	RootDir        string // repository root on disk; resolves submodule dirs
}

// Dump extracts a treeish into opts.ExportDir. It reports success as a
// boolean: every failure is logged and swallowed so bulk callers can
// continue with the next tree. The process working directory is never
// changed; submodule exports pass their directory to git explicitly.
func Dump(ctx context.Context, repo Backend, opts Options) bool {
	outputDir := filepath.Dir(opts.ExportDir)
	prefix := archive.SanitizePrefix(filepath.Base(opts.ExportDir))

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Error("error dumping tree", "dir", outputDir, "err", err)
		return false
	}

	// A non-recursive dump exports only the top-level blob entries;
	// nested trees are excluded from the requested path list.
	var paths []string
	if !opts.Recursive {
		entries, err := repo.ListTree(opts.Treeish)
		if err != nil {
			log.Error("error dumping tree", "dir", outputDir, "err", err)
			return false
		}
		for _, entry := range entries {
			if entry.Type == "blob" {
				paths = append(paths, entry.Name)
			}
		}
	}

	if err := extractTree(ctx, repo, prefix, opts.Treeish, "", outputDir, paths); err != nil {
		log.Error("error dumping tree", "dir", outputDir, "err", err)
		return false
	}

	if !opts.Recursive || !opts.WithSubmodules {
		return true
	}

	// Submodules must be checked out in the source repository before
	// their trees can be exported; this is a local side effect, not part
	// of the export stream.
	if repo.HasSubmodules() {
		if err := repo.UpdateSubmodules(); err != nil {
			log.Error("error dumping tree", "dir", outputDir, "err", err)
			return false
		}
	}

	subs, err := repo.Submodules(opts.Treeish)
	if err != nil {
		log.Error("error dumping tree", "dir", outputDir, "err", err)
		return false
	}

	for _, sub := range subs {
		log.Info("processing submodule", "path", sub.Path, "commit", shortCommit(sub.Commit))

		subPrefix := prefix + archive.AdjustSubmodulePath(sub.Path) + "/"
		subDir := filepath.Join(opts.RootDir, sub.Path)
		if err := extractTree(ctx, repo, subPrefix, sub.Commit, subDir, outputDir, nil); err != nil {
			log.Error("error dumping submodule tree", "submodule", sub.Path, "dir", outputDir, "err", err)
			return false
		}
	}
	return true
}

// extractTree streams one git archive export and unpacks it under
// outputDir.
func extractTree(ctx context.Context, repo Backend, prefix, treeish, dir, outputDir string, paths []string) error {
	stream, wait, err := repo.StartArchive(ctx, prefix, treeish, dir, paths...)
	if err != nil {
		return err
	}

	untarErr := untar(stream, outputDir)
	_ = stream.Close()
	waitErr := wait()

	if untarErr != nil {
		return untarErr
	}
	return waitErr
}

func shortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
