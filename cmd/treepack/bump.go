// Package main provides the entry point for the treepack CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/treepack/treepack/internal/changelog"
	"github.com/treepack/treepack/internal/git"
	"github.com/treepack/treepack/internal/output"
)

// newBumpCmd creates the bump command.
func newBumpCmd() *cobra.Command {
	var message string
	var current string
	var edit bool
	var repoDir string

	cmd := &cobra.Command{
		Use:   "bump <major|minor|patch>",
		Short: "Compute the next release version",
		Long: `Compute the next release version from the latest tag.

With no tags the current version is treated as 0.0.0; --current
overrides tag discovery entirely. With --changelog a Debian changelog
entry is opened for the new version; --message records it
non-interactively.

Examples:
  treepack bump patch
  treepack bump minor --changelog -m "New export options"
  treepack bump major --current 1.9.0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBump(cmd, repoDir, args[0], edit, current, message)
		},
	}
	cmd.Flags().BoolVar(&edit, "changelog", false, "Record the new version in the Debian changelog")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Changelog message (opens an editor when empty)")
	cmd.Flags().StringVar(&current, "current", "", "Current version (default: latest tag)")
	cmd.Flags().StringVarP(&repoDir, "dir", "C", ".", "Repository directory")
	return cmd
}

// runBump executes the bump command.
func runBump(cmd *cobra.Command, repoDir, part string, edit bool, current, message string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	repo, err := git.Open(repoDir)
	if err != nil {
		printer.Error(err)
		return err
	}

	if current == "" {
		current, err = changelog.CurrentVersion(repo.Dir)
		if err != nil {
			printer.Error(err)
			return err
		}
	}

	next, err := changelog.Bump(current, part)
	if err != nil {
		printer.Error(err)
		return err
	}

	if edit {
		if err := changelog.Edit(repo.Dir, next, message); err != nil {
			printer.Error(err)
			return err
		}
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"current": current,
			"next":    next,
		})
	}
	printer.Print("%s -> %s", current, next)
	return nil
}
