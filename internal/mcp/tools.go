package mcp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/treepack/treepack/internal/archive"
	"github.com/treepack/treepack/internal/config"
	"github.com/treepack/treepack/internal/export"
	"github.com/treepack/treepack/internal/git"
)

// openRepo resolves the repository for a tool call. An empty dir means
// the server's working directory.
func openRepo(dir string) (*git.Repository, error) {
	if dir == "" {
		dir = "."
	}
	return git.Open(dir)
}

// --- Status tool ---

// StatusInput is the input for the status tool.
type StatusInput struct {
	Dir string `json:"dir,omitempty" jsonschema:"repository directory (default: server working directory)"`
}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Repo             string `json:"repo"               jsonschema:"repository name"`
	Branch           string `json:"branch"             jsonschema:"current branch"`
	Head             string `json:"head"               jsonschema:"HEAD commit SHA"`
	Submodules       int    `json:"submodules"         jsonschema:"number of submodules bound at HEAD"`
	Dirty            bool   `json:"dirty"              jsonschema:"whether the working copy has uncommitted changes"`
	HasSnapshotIndex bool   `json:"has_snapshot_index" jsonschema:"whether a side snapshot index exists"`
}

func handleStatus(_ context.Context, _ *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
	repo, err := openRepo(input.Dir)
	if err != nil {
		return nil, StatusOutput{}, err
	}

	branch, err := git.RunInDir(repo.Dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return nil, StatusOutput{}, fmt.Errorf("getting current branch: %w", err)
	}
	head, err := git.RunInDir(repo.Dir, "rev-parse", "HEAD")
	if err != nil {
		return nil, StatusOutput{}, fmt.Errorf("getting HEAD: %w", err)
	}

	subs, err := repo.Submodules("HEAD")
	if err != nil {
		return nil, StatusOutput{}, fmt.Errorf("listing submodules: %w", err)
	}

	out := StatusOutput{
		Repo:             filepath.Base(repo.Dir),
		Branch:           branch,
		Head:             head,
		Submodules:       len(subs),
		Dirty:            git.HasUncommittedChanges(repo.Dir),
		HasSnapshotIndex: repo.HasSnapshotIndex(),
	}
	return nil, out, nil
}

// --- Archive tool ---

// ArchiveInput is the input for the archive tool.
type ArchiveInput struct {
	Dir        string `json:"dir,omitempty"        jsonschema:"repository directory (default: server working directory)"`
	Treeish    string `json:"treeish,omitempty"    jsonschema:"tree to archive: commit, tag, WC, or INDEX (default HEAD)"`
	Output     string `json:"output,omitempty"     jsonschema:"output file path (default: <repo>.tar.<ext> next to the repository)"`
	Prefix     string `json:"prefix,omitempty"     jsonschema:"path prefix for archive members"`
	Compressor string `json:"compressor,omitempty" jsonschema:"compression type: gzip, zstd, or an external binary"`
	Level      *int   `json:"level,omitempty"      jsonschema:"compression level (compressor default when omitted)"`
	Submodules *bool  `json:"submodules,omitempty" jsonschema:"include bound submodule trees"`
	Force      bool   `json:"force,omitempty"      jsonschema:"include ignored files when archiving WC"`
}

// ArchiveOutput is the output for the archive tool.
type ArchiveOutput struct {
	Output  string `json:"output"  jsonschema:"path of the written archive"`
	Treeish string `json:"treeish" jsonschema:"resolved tree id that was archived"`
}

func handleArchive(ctx context.Context, _ *mcp.CallToolRequest, input ArchiveInput) (*mcp.CallToolResult, ArchiveOutput, error) {
	repo, err := openRepo(input.Dir)
	if err != nil {
		return nil, ArchiveOutput{}, err
	}

	settings, err := config.Load(repo.Dir)
	if err != nil {
		return nil, ArchiveOutput{}, err
	}
	if input.Compressor != "" {
		settings.Archive.Compressor = input.Compressor
	}
	if input.Level != nil {
		settings.Archive.Level = *input.Level
	}
	if input.Submodules != nil {
		settings.Archive.Submodules = *input.Submodules
	}
	if input.Prefix != "" {
		settings.Archive.Prefix = input.Prefix
	}

	comp, err := archive.NewCompressor(settings.Archive.Compressor, settings.Archive.Level, settings.Archive.Options)
	if err != nil {
		return nil, ArchiveOutput{}, err
	}

	treeish := input.Treeish
	if treeish == "" {
		treeish = "HEAD"
	}
	resolved, err := repo.ResolveTreeish(treeish, input.Force)
	if err != nil {
		return nil, ArchiveOutput{}, err
	}

	outPath := input.Output
	if outPath == "" {
		outPath = filepath.Base(repo.Dir) + ".tar." + comp.Extension()
	}

	err = archive.Assemble(ctx, repo, archive.Options{
		Treeish:        resolved,
		Output:         outPath,
		Prefix:         settings.Archive.Prefix,
		WithSubmodules: settings.Archive.Submodules,
		RootDir:        repo.Dir,
	}, comp)
	if err != nil {
		return nil, ArchiveOutput{}, err
	}

	return nil, ArchiveOutput{Output: outPath, Treeish: resolved}, nil
}

// --- Export tool ---

// ExportInput is the input for the export tool.
type ExportInput struct {
	Dir          string `json:"dir,omitempty"           jsonschema:"repository directory (default: server working directory)"`
	Treeish      string `json:"treeish,omitempty"       jsonschema:"tree to export: commit, tag, WC, or INDEX (default HEAD)"`
	ExportDir    string `json:"export_dir"              jsonschema:"destination directory; its base name becomes the member prefix"`
	Submodules   *bool  `json:"submodules,omitempty"    jsonschema:"include bound submodule trees"`
	NonRecursive bool   `json:"non_recursive,omitempty" jsonschema:"export only top-level files"`
	Force        bool   `json:"force,omitempty"         jsonschema:"include ignored files when exporting WC"`
}

// ExportOutput is the output for the export tool.
type ExportOutput struct {
	ExportDir string `json:"export_dir" jsonschema:"directory the tree was extracted into"`
	Treeish   string `json:"treeish"    jsonschema:"resolved tree id that was exported"`
}

func handleExport(ctx context.Context, _ *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
	if input.ExportDir == "" {
		return nil, ExportOutput{}, errors.New("export_dir is required")
	}

	repo, err := openRepo(input.Dir)
	if err != nil {
		return nil, ExportOutput{}, err
	}

	settings, err := config.Load(repo.Dir)
	if err != nil {
		return nil, ExportOutput{}, err
	}
	withSubs := settings.Export.Submodules
	if input.Submodules != nil {
		withSubs = *input.Submodules
	}

	treeish := input.Treeish
	if treeish == "" {
		treeish = "HEAD"
	}
	resolved, err := repo.ResolveTreeish(treeish, input.Force)
	if err != nil {
		return nil, ExportOutput{}, err
	}

	ok := export.Dump(ctx, repo, export.Options{
		Treeish:        resolved,
		ExportDir:      input.ExportDir,
		WithSubmodules: withSubs,
		Recursive:      !input.NonRecursive,
		RootDir:        repo.Dir,
	})
	if !ok {
		return nil, ExportOutput{}, fmt.Errorf("exporting %s to %s failed", treeish, input.ExportDir)
	}

	return nil, ExportOutput{ExportDir: input.ExportDir, Treeish: resolved}, nil
}

// --- Snapshot tools ---

// SnapshotInput is the input for the snapshot tool.
type SnapshotInput struct {
	Dir   string `json:"dir,omitempty"   jsonschema:"repository directory (default: server working directory)"`
	Force bool   `json:"force,omitempty" jsonschema:"include ignored files in the snapshot"`
}

// SnapshotOutput is the output for the snapshot tool.
type SnapshotOutput struct {
	Tree string `json:"tree" jsonschema:"id of the written tree object"`
}

func handleSnapshot(_ context.Context, _ *mcp.CallToolRequest, input SnapshotInput) (*mcp.CallToolResult, SnapshotOutput, error) {
	repo, err := openRepo(input.Dir)
	if err != nil {
		return nil, SnapshotOutput{}, err
	}

	tree, err := repo.WriteWorkingCopy(input.Force)
	if err != nil {
		return nil, SnapshotOutput{}, err
	}
	return nil, SnapshotOutput{Tree: tree}, nil
}

// DropSnapshotInput is the input for the drop_snapshot tool.
type DropSnapshotInput struct {
	Dir string `json:"dir,omitempty" jsonschema:"repository directory (default: server working directory)"`
}

// DropSnapshotOutput is the output for the drop_snapshot tool.
type DropSnapshotOutput struct {
	Dropped bool `json:"dropped" jsonschema:"always true on success, including when no index existed"`
}

func handleDropSnapshot(_ context.Context, _ *mcp.CallToolRequest, input DropSnapshotInput) (*mcp.CallToolResult, DropSnapshotOutput, error) {
	repo, err := openRepo(input.Dir)
	if err != nil {
		return nil, DropSnapshotOutput{}, err
	}

	if err := repo.DropSnapshotIndex(); err != nil {
		return nil, DropSnapshotOutput{}, err
	}
	return nil, DropSnapshotOutput{Dropped: true}, nil
}
