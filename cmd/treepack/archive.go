// Package main provides the entry point for the treepack CLI.
package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/treepack/treepack/internal/archive"
	"github.com/treepack/treepack/internal/config"
	"github.com/treepack/treepack/internal/git"
	"github.com/treepack/treepack/internal/output"
)

// archiveFlags holds the archive command's flag values.
type archiveFlags struct {
	treeish    string
	outputPath string
	prefix     string
	compressor string
	level      int
	submodules bool
	force      bool
	repoDir    string
}

// newArchiveCmd creates the archive command.
func newArchiveCmd() *cobra.Command {
	var flags archiveFlags
	cmd := &cobra.Command{
		Use:   "archive [treeish]",
		Short: "Build a compressed tarball from a git tree",
		Long: `Build a compressed tarball from any git tree.

The treeish may be a commit, tag, or tree id, or one of the synthetic
names WC (live working copy) and INDEX (staged changes). Defaults to
HEAD. With --submodules the trees of bound submodules are spliced into
the tarball under their paths.

Examples:
  treepack archive v1.0 -o pkg-1.0.tar.gz --prefix pkg-1.0
  treepack archive WC --force -o snapshot.tar.zst -z zstd
  treepack archive --submodules -o full.tar.gz`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.treeish = args[0]
			}
			return runArchive(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Output archive path (default <repo>.tar.<ext>)")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "Path prefix for archive members")
	cmd.Flags().StringVarP(&flags.compressor, "compressor", "z", "", "Compression type: gzip, zstd, or an external binary")
	cmd.Flags().IntVar(&flags.level, "level", -1, "Compression level (compressor default when negative)")
	cmd.Flags().BoolVar(&flags.submodules, "submodules", false, "Include bound submodule trees")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Include ignored files when archiving WC")
	cmd.Flags().StringVarP(&flags.repoDir, "dir", "C", ".", "Repository directory")
	return cmd
}

// runArchive executes the archive command.
func runArchive(cmd *cobra.Command, flags archiveFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	repo, err := git.Open(flags.repoDir)
	if err != nil {
		printer.Error(err)
		return err
	}

	settings, err := config.Load(repo.Dir)
	if err != nil {
		printer.Error(err)
		return err
	}
	if cmd.Flags().Changed("compressor") {
		settings.Archive.Compressor = flags.compressor
	}
	if cmd.Flags().Changed("level") {
		settings.Archive.Level = flags.level
	}
	if cmd.Flags().Changed("submodules") {
		settings.Archive.Submodules = flags.submodules
	}
	if cmd.Flags().Changed("prefix") {
		settings.Archive.Prefix = flags.prefix
	}

	comp, err := archive.NewCompressor(settings.Archive.Compressor, settings.Archive.Level, settings.Archive.Options)
	if err != nil {
		printer.Error(err)
		return err
	}

	treeish := flags.treeish
	if treeish == "" {
		treeish = "HEAD"
	}
	resolved, err := repo.ResolveTreeish(treeish, flags.force)
	if err != nil {
		printer.Error(err)
		return err
	}

	outPath := flags.outputPath
	if outPath == "" {
		outPath = filepath.Base(repo.Dir) + ".tar." + comp.Extension()
	}

	err = archive.Assemble(cmd.Context(), repo, archive.Options{
		Treeish:        resolved,
		Output:         outPath,
		Prefix:         settings.Archive.Prefix,
		WithSubmodules: settings.Archive.Submodules,
		RootDir:        repo.Dir,
	}, comp)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"output":  outPath,
			"treeish": resolved,
		})
	}
	printer.Print("Wrote %s", outPath)
	return nil
}
