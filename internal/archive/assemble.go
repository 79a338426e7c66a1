package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/treepack/treepack/internal/git"
	"github.com/treepack/treepack/internal/output"
)

// Backend is the slice of the version-control interface the assembler
// needs.
type Backend interface {
	// Archive exports treeish as a tar file at outputPath. dir overrides
	// the working directory for submodule exports; empty means the
	// repository root.
	Archive(prefix, outputPath, treeish, dir string, paths ...string) error
	// StartArchive streams the tar export; the returned wait func must be
	// called after draining the stream.
	StartArchive(ctx context.Context, prefix, treeish, dir string, paths ...string) (io.ReadCloser, func() error, error)
	// Submodules lists submodules bound at treeish, in backend order.
	Submodules(treeish string) ([]git.Submodule, error)
}

// Options configures one archive build.
type Options struct {
	Treeish        string
	Output         string // final compressed archive path
	Prefix         string // sanitized before use
	WithSubmodules bool
	RootDir        string // repository root on disk; resolves submodule dirs
}

// Assemble builds the compressed archive described by opts. Trees
// without submodules (or with submodule inclusion disabled) go through a
// single streaming pass; trees with submodules go through the
// export/concatenate/compress sequence.
func Assemble(ctx context.Context, repo Backend, opts Options, comp Compressor) error {
	if opts.WithSubmodules {
		subs, err := repo.Submodules(opts.Treeish)
		if err != nil {
			return err
		}
		if len(subs) > 0 {
			return assembleSubmodules(ctx, repo, opts, comp, subs)
		}
	}
	return assembleSingle(ctx, repo, opts, comp)
}

// assembleSingle streams the native tar export for the treeish directly
// through the compressor into the output path. No staging directory is
// created on this path.
func assembleSingle(ctx context.Context, repo Backend, opts Options, comp Compressor) error {
	prefix := SanitizePrefix(opts.Prefix)

	stream, wait, err := repo.StartArchive(ctx, prefix, opts.Treeish, "")
	if err != nil {
		return buildError(opts.Output, err)
	}

	compressErr := compressToFile(comp, stream, opts.Output)
	_ = stream.Close()
	waitErr := wait()

	if compressErr != nil {
		return buildError(opts.Output, compressErr)
	}
	if waitErr != nil {
		return buildError(opts.Output, waitErr)
	}
	return nil
}

// assembleSubmodules exports the top-level tree to an uncompressed
// intermediate tar, appends one intermediate archive per submodule in
// backend order, then compresses the completed tar. The staging
// directory and the intermediate tar are removed on every exit path.
func assembleSubmodules(ctx context.Context, repo Backend, opts Options, comp Compressor, subs []git.Submodule) (err error) {
	prefix := SanitizePrefix(opts.Prefix)

	stagingDir, err := os.MkdirTemp("", "treepack-")
	if err != nil {
		return buildError(opts.Output, err)
	}
	defer func() {
		if rmErr := os.RemoveAll(stagingDir); rmErr != nil && err == nil {
			err = buildError(opts.Output, rmErr)
		}
	}()

	// Keep the intermediate tar inside the staging dir so it can never
	// collide with the output path.
	tarfile := filepath.Join(stagingDir, "main.tar")

	// Main tree first; submodule entries are appended behind it.
	if archiveErr := repo.Archive(prefix, tarfile, opts.Treeish, ""); archiveErr != nil {
		return buildError(opts.Output, archiveErr)
	}

	for i, sub := range subs {
		log.Debug("processing submodule", "path", sub.Path, "commit", shortCommit(sub.Commit))

		subPrefix := prefix + AdjustSubmodulePath(sub.Path) + "/"
		subTar := filepath.Join(stagingDir, fmt.Sprintf("submodule-%d.tar", i))

		if archiveErr := repo.Archive(subPrefix, subTar, sub.Commit, filepath.Join(opts.RootDir, sub.Path)); archiveErr != nil {
			return buildError(opts.Output, archiveErr)
		}
		if catErr := CatenateTar(tarfile, subTar); catErr != nil {
			return buildError(opts.Output, catErr)
		}
	}

	f, openErr := os.Open(tarfile)
	if openErr != nil {
		return buildError(opts.Output, openErr)
	}
	compressErr := compressToFile(comp, f, opts.Output)
	_ = f.Close()
	if compressErr != nil {
		return buildError(opts.Output, compressErr)
	}
	return nil
}

// compressToFile runs the compressor over the stream into outputPath.
func compressToFile(comp Compressor, r io.Reader, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := comp.Compress(r, out); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// buildError wraps any archive-assembly failure with the intended output
// path.
func buildError(outputPath string, cause error) error {
	return output.NewSystemErrorWithCause(
		fmt.Sprintf("error creating %s: %v", outputPath, cause), cause)
}

func shortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
