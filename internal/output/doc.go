// Package output provides structured output handling for the treepack CLI.
//
// All commands render through a Printer that switches between human-readable
// and JSON output based on the persistent --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	// For success output
//	printer.Success(map[string]any{"message": "archive created", "output": path})
//
//	// For error output
//	printer.Error(err)
//
// # Exit Codes
//
// The package defines the process exit codes and a typed error that
// carries one:
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: User error (bad args, bad treeish)
//	output.ExitSystemError // 2: System error (git or compressor failed, I/O error)
//	output.ExitConflict    // 3: Conflict (output exists, state mismatch)
//
// Use the error constructors so errors reach the shell with the right code:
//
//	output.NewUserError("specify a treeish or --working-copy")
//	output.NewSystemError("git archive failed")
//
// Styling of human-readable output is lipgloss-based and disabled
// automatically when output is piped.
package output
