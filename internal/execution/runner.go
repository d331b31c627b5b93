package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"ebt/internal/config"
)

// waitDelay bounds how long Wait keeps draining output pipes after the shell
// exits or is killed, for descendants that keep the pipes open
const waitDelay = 2 * time.Second

// Runner executes build commands through sh
type Runner struct {
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
}

// NewRunner creates a new Runner. In verbose mode command output is streamed
// to the console instead of captured.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		verbose: cfg.Flags.Verbose,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// Run executes command with sh -c in dir. The command is killed once timeout
// elapses. Only exit code 0 is a success.
func (r *Runner) Run(ctx context.Context, command, dir string, timeout time.Duration) (Output, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	configureProcess(cmd)

	var stdout, stderr bytes.Buffer
	if r.verbose {
		cmd.Stdout = r.stdout
		cmd.Stderr = r.stderr
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	if err := cmd.Start(); err != nil {
		return Output{}, &SpawnError{Command: command, Err: err}
	}

	err := cmd.Wait()

	out := Output{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		out.ExitCode = cmd.ProcessState.ExitCode()
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return out, &TimeoutError{Timeout: timeout}
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return out, fmt.Errorf("run command: %w", ctx.Err())
	}
	if err == nil {
		return out, nil
	}

	// The shell exited cleanly but a descendant held the pipes open
	if errors.Is(err, exec.ErrWaitDelay) && out.ExitCode == 0 {
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, &CommandFailedError{ExitCode: out.ExitCode, Stderr: out.Stderr}
	}

	return out, fmt.Errorf("run command: %w", err)
}
