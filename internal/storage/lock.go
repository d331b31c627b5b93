package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrRunInProgress is returned when another harness run holds the lock
var ErrRunInProgress = errors.New("another run is in progress in this directory")

// RunLock keeps two harness runs in the same root from cleaning each other's
// output directories
type RunLock struct {
	flock *flock.Flock
	path  string
}

// NewRunLock creates a lock backed by the file at path
func NewRunLock(path string) *RunLock {
	return &RunLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Acquire takes the lock without blocking
func (l *RunLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}
	acquired, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", l.path, err)
	}
	if !acquired {
		return fmt.Errorf("%w (lock %s)", ErrRunInProgress, l.path)
	}
	return nil
}

// Release releases the lock
func (l *RunLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}
