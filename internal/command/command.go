// Package command provides a thin invocation layer for the external
// executables treepack drives (tar, rm, dch). Each named operation is a
// Command value: an executable name plus a fixed base argument list,
// with per-call arguments appended at Run time.
//
// Child processes inherit treepack's standard streams, so interactive
// tools (the changelog editor) work unmodified. All arguments are passed
// as an argv vector; nothing is ever interpolated into a shell line.
package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/treepack/treepack/internal/output"
)

// Verbose echoes every invocation before it runs.
var Verbose bool

// Command is a named external executable with fixed base arguments.
type Command struct {
	Name     string
	Args     []string
	RunError string // failure message; a generic one is derived when empty
	Dir      string // working directory for the child; empty inherits ours
}

// New creates a Command for the given executable and base arguments.
func New(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// WithRunError returns a copy of the command with an operation-specific
// failure message.
func (c Command) WithRunError(msg string) Command {
	c.RunError = msg
	return c
}

// InDir returns a copy of the command that runs in the given directory.
func (c Command) InDir(dir string) Command {
	c.Dir = dir
	return c
}

// Run invokes the command with additional per-call arguments appended to
// the base argument list.
func (c Command) Run(extra ...string) error {
	return c.RunContext(context.Background(), extra...)
}

// RunContext invokes the command with the given context. The child
// inherits stdin, stdout and stderr. Success is exit code 0; every other
// outcome (non-zero exit, signal termination, failure to start) is
// reported on stderr and returned as a single system-class error carrying
// the command's RunError message.
func (c Command) RunContext(ctx context.Context, extra ...string) error {
	args := make([]string, 0, len(c.Args)+len(extra))
	args = append(args, c.Args...)
	args = append(args, extra...)

	if Verbose {
		log.Debug("running command", "cmd", c.Name, "args", strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Dir = c.Dir

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		fmt.Fprintf(os.Stderr, "execution failed: %v\n", err)
		return c.failure(err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code < 0 {
			// ProcessState.String() names the signal, e.g. "signal: killed"
			fmt.Fprintf(os.Stderr, "%s was terminated (%s)\n", c.Name, exitErr.ProcessState.String())
		} else {
			fmt.Fprintf(os.Stderr, "%s returned %d\n", c.Name, code)
		}
	}
	return c.failure(err)
}

// failure builds the uniform execution error for this command.
func (c Command) failure(cause error) error {
	msg := c.RunError
	if msg == "" {
		msg = fmt.Sprintf("couldn't run '%s'", strings.TrimSpace(c.Name+" "+strings.Join(c.Args, " ")))
	}
	return output.NewSystemErrorWithCause(msg, cause)
}
