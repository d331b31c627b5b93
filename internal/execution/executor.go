package execution

import (
	"context"
	"time"
)

// Output is what a finished build command produced. Stdout and Stderr are
// empty when output is streamed to the console.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs a shell command in a working directory with a timeout
type Executor interface {
	Run(ctx context.Context, command, dir string, timeout time.Duration) (Output, error)
}

// Progress receives per-example progress from the Suite
type Progress interface {
	Update(passed, failed int)
	Finish()
}
