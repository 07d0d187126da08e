package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Cmd is a single external process invocation.
// It runs in the working directory of the current process.
type Cmd struct {
	Argv []string
}

// String renders the argv as a shell-like line for display.
func (c Cmd) String() string {
	return strings.Join(c.Argv, " ")
}

// Runner runs external processes.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) error
}

// ProcessError reports an external process that could not be started or
// exited non-zero.
type ProcessError struct {
	Argv     []string
	ExitCode int // -1 when the process never started
	Err      error
}

func (e *ProcessError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s exited with status %d", strings.Join(e.Argv, " "), e.ExitCode)
	}
	return fmt.Sprintf("running %s: %v", strings.Join(e.Argv, " "), e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// ErrEmptyCommand is returned when a Cmd has no argv.
var ErrEmptyCommand = errors.New("empty command")

// ExecRunner runs commands with os/exec and blocks until they exit.
type ExecRunner struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd, streaming its output to the configured writers.
func (r *ExecRunner) Run(ctx context.Context, cmd Cmd) error {
	if len(cmd.Argv) == 0 {
		return ErrEmptyCommand
	}

	slog.Debug("running command", "argv", cmd.Argv)

	c := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	c.Stdin = nil

	c.Stdout = r.Stdout
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	c.Stderr = r.Stderr
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	if err := c.Run(); err != nil {
		pe := &ProcessError{Argv: cmd.Argv, ExitCode: -1, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			pe.ExitCode = exitErr.ExitCode()
		}
		slog.Debug("command failed", "argv", cmd.Argv, "error", err)
		return pe
	}
	return nil
}
