package execution

import (
	"fmt"
	"time"
)

// SpawnError means the build command could not be started at all
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start command: %v", e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// TimeoutError means the build command was killed after running longer than
// its timeout
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Command timed out after %dms", e.Timeout.Milliseconds())
}

// CommandFailedError means the build command exited with a nonzero code
type CommandFailedError struct {
	ExitCode int
	Stderr   string
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("Command failed with code %d\nstderr: %s", e.ExitCode, e.Stderr)
}
