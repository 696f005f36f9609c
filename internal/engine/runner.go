package engine

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Command describes one subprocess invocation. The working directory and
// extra environment are explicit parameters rather than process-wide
// state, so nothing here mutates the caller's cwd or environment.
type Command struct {
	// Path is the executable to run.
	Path string

	// Args are the arguments, not including the executable itself.
	Args []string

	// Dir is the working directory; empty inherits the caller's.
	Dir string

	// Env holds extra KEY=VALUE entries appended to the inherited
	// environment.
	Env []string
}

// Runner executes subprocesses. The production implementation shells out;
// tests substitute scripted results to count invocation attempts.
type Runner interface {
	// Run executes cmd and returns its exit code. The error is non-nil
	// only when the process could not be run at all (missing executable,
	// spawn failure); a non-zero exit is (code, nil).
	Run(ctx context.Context, cmd Command) (int, error)
}

// ExecRunner runs commands with os/exec, streaming output to the
// configured writers.
type ExecRunner struct {
	// Stdout and Stderr receive the child's output. Nil defaults to the
	// caller's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (int, error) {
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...) //nolint:gosec // invocations are built from resolved local paths
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	c.Stdout = r.Stdout
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	c.Stderr = r.Stderr
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	err := c.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

// QuietRunner wraps ExecRunner with discarded output, for probe
// invocations whose diagnostics would only be noise.
func QuietRunner() *ExecRunner {
	return &ExecRunner{Stdout: io.Discard, Stderr: io.Discard}
}
