// Package main provides the entry point for the treepack CLI.
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/treepack/treepack/internal/command"
	"github.com/treepack/treepack/internal/config"
	"github.com/treepack/treepack/internal/export"
	"github.com/treepack/treepack/internal/git"
	"github.com/treepack/treepack/internal/output"
)

// exportFlags holds the export command's flag values.
type exportFlags struct {
	treeish      string
	exportDir    string
	submodules   bool
	nonRecursive bool
	force        bool
	replace      bool
	repoDir      string
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var flags exportFlags
	cmd := &cobra.Command{
		Use:   "export [treeish]",
		Short: "Extract a git tree into a directory",
		Long: `Extract a git tree into a directory.

The destination's base name becomes the directory the tree lands in.
Defaults to HEAD; WC and INDEX work the same way they do for archive.
With --top-level-only, only files directly at the tree root are
exported and nested directories are skipped.

Examples:
  treepack export v1.0 -d ../build-area/pkg-1.0
  treepack export WC -d /tmp/scratch --force
  treepack export --submodules -d ../build-area/pkg-1.0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.treeish = args[0]
			}
			return runExport(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.exportDir, "dest", "d", "", "Destination directory (default from config)")
	cmd.Flags().BoolVar(&flags.submodules, "submodules", false, "Include bound submodule trees")
	cmd.Flags().BoolVar(&flags.nonRecursive, "top-level-only", false, "Export only top-level files")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Include ignored files when exporting WC")
	cmd.Flags().BoolVar(&flags.replace, "replace", false, "Remove an existing destination first")
	cmd.Flags().StringVarP(&flags.repoDir, "dir", "C", ".", "Repository directory")
	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, flags exportFlags) error {
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
	withSubs := settings.Export.Submodules
	if cmd.Flags().Changed("submodules") {
		withSubs = flags.submodules
	}

	exportDir := flags.exportDir
	if exportDir == "" {
		exportDir = filepath.Join(settings.Export.Dir, filepath.Base(repo.Dir))
	}

	if flags.replace {
		if _, statErr := os.Stat(exportDir); statErr == nil {
			if err := command.RemoveTree(exportDir).Run(); err != nil {
				printer.Error(err)
				return err
			}
		}
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

	ok := export.Dump(cmd.Context(), repo, export.Options{
		Treeish:        resolved,
		ExportDir:      exportDir,
		WithSubmodules: withSubs,
		Recursive:      !flags.nonRecursive,
		RootDir:        repo.Dir,
	})
	if !ok {
		err := output.NewSystemError("exporting " + treeish + " to " + exportDir + " failed")
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"export_dir": exportDir,
			"treeish":    resolved,
		})
	}
	printer.Print("Exported %s to %s", treeish, exportDir)
	return nil
}
