// Package main provides the entry point for the treepack CLI.
package main

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/treepack/treepack/internal/git"
	"github.com/treepack/treepack/internal/output"
)

// statusResult holds the data for status output.
type statusResult struct {
	Repo             string `json:"repo"`
	Branch           string `json:"branch"`
	Head             string `json:"head"`
	Submodules       int    `json:"submodules"`
	Dirty            bool   `json:"dirty"`
	HasSnapshotIndex bool   `json:"has_snapshot_index"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	var repoDir string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show repository and archive state",
		Long: `Show the current state of the repository.

Displays repository info (name, branch, HEAD), submodule count,
working copy cleanliness, and whether a snapshot index exists.

Examples:
  treepack status          # Show human-readable status
  treepack status --json   # Output status as JSON for scripting`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, repoDir)
		},
	}
	cmd.Flags().StringVarP(&repoDir, "dir", "C", ".", "Repository directory")
	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, repoDir string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	result, err := gatherStatus(repoDir)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"repo":               result.Repo,
			"branch":             result.Branch,
			"head":               result.Head,
			"submodules":         result.Submodules,
			"dirty":              result.Dirty,
			"has_snapshot_index": result.HasSnapshotIndex,
		})
	}

	printHumanStatus(printer, result)
	return nil
}

// gatherStatus collects all status information.
func gatherStatus(repoDir string) (*statusResult, error) {
	repo, err := git.Open(repoDir)
	if err != nil {
		return nil, err
	}

	branch, err := git.RunInDir(repo.Dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return nil, err
	}

	head, err := git.RunInDir(repo.Dir, "rev-parse", "HEAD")
	if err != nil {
		return nil, err
	}

	subs, err := repo.Submodules("HEAD")
	if err != nil {
		return nil, err
	}

	return &statusResult{
		Repo:             filepath.Base(repo.Dir),
		Branch:           branch,
		Head:             head,
		Submodules:       len(subs),
		Dirty:            git.HasUncommittedChanges(repo.Dir),
		HasSnapshotIndex: repo.HasSnapshotIndex(),
	}, nil
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, status *statusResult) {
	printer.KeyValue("Repo", status.Repo)
	printer.KeyValue("Branch", status.Branch)
	printer.KeyValue("HEAD", status.Head[:min(12, len(status.Head))])
	printer.KeyValue("Submodules", strconv.Itoa(status.Submodules))
	printer.KeyValue("Working copy", formatClean(status.Dirty))
	printer.KeyValue("Snapshot index", formatBool(status.HasSnapshotIndex))
}

// formatClean returns a human-readable cleanliness string.
func formatClean(dirty bool) string {
	if dirty {
		return "modified"
	}
	return "clean"
}

// formatBool returns a human-readable boolean string.
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
