// Package logger provides the harness console logger.
//
// Every line is prefixed with an [HH:MM:SS] timestamp. Info lines are only
// written in verbose mode; success, warning, error and plain lines are
// always written.
package logger

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level identifies the kind of a log line
type Level int

const (
	LevelPlain Level = iota
	LevelInfo
	LevelSuccess
	LevelWarning
	LevelError
)

// ConsoleLogger writes timestamped, levelled lines to a writer
type ConsoleLogger struct {
	writer  io.Writer
	verbose bool
	mutex   sync.Mutex
	now     func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger writing to writer. If writer is
// nil, messages are discarded. Info lines are written only when verbose.
func NewConsoleLogger(writer io.Writer, verbose bool) *ConsoleLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &ConsoleLogger{
		writer:  writer,
		verbose: verbose,
		now:     time.Now,
	}
}

// Verbose reports whether info lines are written
func (cl *ConsoleLogger) Verbose() bool {
	return cl.verbose
}

// Info logs a detail line, shown only in verbose mode
func (cl *ConsoleLogger) Info(format string, args ...interface{}) {
	cl.log(LevelInfo, format, args...)
}

// Success logs a passing step
func (cl *ConsoleLogger) Success(format string, args ...interface{}) {
	cl.log(LevelSuccess, format, args...)
}

// Warning logs a non-fatal problem
func (cl *ConsoleLogger) Warning(format string, args ...interface{}) {
	cl.log(LevelWarning, format, args...)
}

// Error logs a failing step
func (cl *ConsoleLogger) Error(format string, args ...interface{}) {
	cl.log(LevelError, format, args...)
}

// Plain logs a line without a level marker
func (cl *ConsoleLogger) Plain(format string, args ...interface{}) {
	cl.log(LevelPlain, format, args...)
}

func (cl *ConsoleLogger) log(level Level, format string, args ...interface{}) {
	if level == LevelInfo && !cl.verbose {
		return
	}

	message := fmt.Sprintf(format, args...)
	prefix := color.HiBlackString("[%s]", cl.now().Format("15:04:05"))

	var line string
	switch level {
	case LevelInfo:
		line = fmt.Sprintf("%s %s %s", prefix, color.BlueString("ℹ️"), message)
	case LevelSuccess:
		line = fmt.Sprintf("%s %s %s", prefix, color.GreenString("✅"), message)
	case LevelWarning:
		line = fmt.Sprintf("%s %s %s", prefix, color.YellowString("⚠️"), message)
	case LevelError:
		line = fmt.Sprintf("%s %s %s", prefix, color.RedString("❌"), message)
	default:
		line = fmt.Sprintf("%s %s", prefix, message)
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	fmt.Fprintln(cl.writer, line)
}
