// Package main provides the entry point for the treepack CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/treepack/treepack/internal/command"
	"github.com/treepack/treepack/internal/output"
)

// newUnpackCmd creates the unpack command.
func newUnpackCmd() *cobra.Command {
	var dest string
	cmd := &cobra.Command{
		Use:   "unpack <tarball>",
		Short: "Extract a tarball into a directory",
		Long: `Extract a (possibly compressed) tarball into a directory.

Compression is detected from the file name. The destination directory
is created when missing.

Examples:
  treepack unpack pkg-1.0.tar.gz
  treepack unpack pkg-1.0.tar.zst -d ../build-area`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(cmd, args[0], dest)
		},
	}
	cmd.Flags().StringVarP(&dest, "dest", "d", ".", "Destination directory")
	return cmd
}

// runUnpack executes the unpack command.
func runUnpack(cmd *cobra.Command, tarball, dest string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	if err := os.MkdirAll(dest, 0o755); err != nil {
		sysErr := output.NewSystemErrorWithCause("couldn't create "+dest, err)
		printer.Error(sysErr)
		return sysErr
	}

	if err := command.UnpackTarball(tarball, dest).Run(); err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"tarball": tarball,
			"dest":    dest,
		})
	}
	printer.Print("Unpacked %s into %s", tarball, dest)
	return nil
}
