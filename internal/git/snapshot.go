package git

import (
	"os"
	"path/filepath"

	"github.com/treepack/treepack/internal/output"
)

// Synthetic treeish sentinels. Callers may pass these anywhere a real
// commit or tag is accepted; ResolveTreeish turns them into real tree
// ids first so downstream export and archive code never sees them.
const (
	// Index names the staged-changes index in a treeish context.
	Index = "INDEX"
	// WorkingCopy names the live working copy in a treeish context.
	WorkingCopy = "WC"
)

// snapshotIndex is the side-index file used to snapshot the working copy,
// relative to the .git directory. A dedicated path is used so that the
// primary index is never disturbed while a snapshot is in progress.
const snapshotIndex = "treepack_index"

// snapshotIndexPath returns the absolute side-index path for the repo.
func (r *Repository) snapshotIndexPath() (string, error) {
	gitDir, err := r.run(nil, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", output.NewSystemErrorWithCause("couldn't locate git directory", err)
	}
	return filepath.Join(gitDir, snapshotIndex), nil
}

// WriteWorkingCopy materializes the current working copy state into the
// side index and converts it into a tree object, returning the tree id.
// With force set, otherwise-ignored files are included. The side index is
// overwritten on each call.
func (r *Repository) WriteWorkingCopy(force bool) (string, error) {
	indexFile, err := r.snapshotIndexPath()
	if err != nil {
		return "", err
	}
	if err := r.AddFiles(r.Dir, force, indexFile); err != nil {
		return "", err
	}
	return r.WriteTree(indexFile)
}

// DropSnapshotIndex discards the side index if present.
// Absence is not an error; the operation is idempotent.
func (r *Repository) DropSnapshotIndex() error {
	indexFile, err := r.snapshotIndexPath()
	if err != nil {
		return err
	}
	if err := os.Remove(indexFile); err != nil && !os.IsNotExist(err) {
		return output.NewSystemErrorWithCause("couldn't remove snapshot index", err)
	}
	return nil
}

// HasSnapshotIndex reports whether a working-copy snapshot index exists.
func (r *Repository) HasSnapshotIndex() bool {
	indexFile, err := r.snapshotIndexPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(indexFile)
	return err == nil
}

// ResolveTreeish maps the synthetic sentinels to real tree ids, taking a
// working-copy snapshot when needed. Real treeishes pass through
// unchanged. For WorkingCopy the snapshot includes ignored files only
// when force is set; for Index the primary index itself is written out.
func (r *Repository) ResolveTreeish(treeish string, force bool) (string, error) {
	switch treeish {
	case WorkingCopy:
		return r.WriteWorkingCopy(force)
	case Index:
		return r.WriteTree("")
	default:
		return treeish, nil
	}
}
