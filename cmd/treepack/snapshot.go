// Package main provides the entry point for the treepack CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/treepack/treepack/internal/git"
	"github.com/treepack/treepack/internal/output"
)

// newSnapshotCmd creates the snapshot command and its drop subcommand.
func newSnapshotCmd() *cobra.Command {
	var force bool
	var repoDir string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture the working copy as a tree object",
		Long: `Capture the current working copy as a git tree object.

The snapshot goes through a dedicated side index so the repository's
primary index is never disturbed. The resulting tree id is printed and
can be passed to archive or export like any other treeish.

Examples:
  treepack snapshot            # snapshot tracked and untracked files
  treepack snapshot --force    # also include ignored files
  treepack snapshot drop       # discard the side index`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd, repoDir, force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Include ignored files in the snapshot")
	cmd.PersistentFlags().StringVarP(&repoDir, "dir", "C", ".", "Repository directory")

	cmd.AddCommand(&cobra.Command{
		Use:   "drop",
		Short: "Remove the side snapshot index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshotDrop(cmd, repoDir)
		},
	})
	return cmd
}

// runSnapshot executes the snapshot command.
func runSnapshot(cmd *cobra.Command, repoDir string, force bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	repo, err := git.Open(repoDir)
	if err != nil {
		printer.Error(err)
		return err
	}

	tree, err := repo.WriteWorkingCopy(force)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"tree": tree})
	}
	printer.Println(tree)
	return nil
}

// runSnapshotDrop executes the snapshot drop subcommand.
func runSnapshotDrop(cmd *cobra.Command, repoDir string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	repo, err := git.Open(repoDir)
	if err != nil {
		printer.Error(err)
		return err
	}

	if err := repo.DropSnapshotIndex(); err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"dropped": true})
	}
	printer.Print("Snapshot index dropped")
	return nil
}
