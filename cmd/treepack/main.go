// Package main provides the entry point for the treepack CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/treepack/treepack/internal/command"
	"github.com/treepack/treepack/internal/config"
	"github.com/treepack/treepack/internal/envfile"
	"github.com/treepack/treepack/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor reports whether styled output should be used for the
// command's stdout.
func useColor(cmd *cobra.Command) bool {
	return output.IsTTY(cmd.OutOrStdout())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the treepack CLI.
func newRootCmd() *cobra.Command {
	var verboseFlag bool

	cmd := &cobra.Command{
		Use:   "treepack",
		Short: "Reproducible archives and exports from git trees",
		Long: `Treepack builds tarballs and directory exports from git source trees.

It archives any committed tree, the staged index, or the live working
copy, includes bound submodule trees when asked, and never touches the
repository's primary index or the process working directory.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'treepack --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		log.SetPrefix("treepack")
		if verboseFlag {
			command.Verbose = true
			log.SetLevel(log.DebugLevel)
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log the commands being run")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take
// precedence.
//
// Resolution order:
//  1. $CWD/.env.local (per-repo override, gitignored)
//  2. $CWD/.env       (per-repo)
//  3. ~/.config/treepack/env (global fallback)
func loadEnvFiles() {
	paths := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	_ = envfile.LoadAll(paths...)
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "build", Title: "Build Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "repo", Title: "Repository Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newArchiveCmd(), "build")
	addGroupedCommand(cmd, newExportCmd(), "build")
	addGroupedCommand(cmd, newUnpackCmd(), "build")

	addGroupedCommand(cmd, newStatusCmd(), "repo")
	addGroupedCommand(cmd, newSnapshotCmd(), "repo")
	addGroupedCommand(cmd, newBumpCmd(), "repo")

	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
