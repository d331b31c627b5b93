package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer, verbose bool) *ConsoleLogger {
	color.NoColor = true
	l := NewConsoleLogger(buf, verbose)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 13, 4, 5, 0, time.UTC) }
	return l
}

func TestConsoleLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, false)

	l.Success("Build completed in %dms", 42)
	l.Error("Build failed: %s", "boom")
	l.Warning("careful")
	l.Plain("Starting")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"[13:04:05] ✅ Build completed in 42ms",
		"[13:04:05] ❌ Build failed: boom",
		"[13:04:05] ⚠️ careful",
		"[13:04:05] Starting",
	}, lines)
}

func TestConsoleLogger_InfoRequiresVerbose(t *testing.T) {
	var quiet, loud bytes.Buffer

	newTestLogger(&quiet, false).Info("Running: %s", "unify build")
	newTestLogger(&loud, true).Info("Running: %s", "unify build")

	assert.Empty(t, quiet.String())
	assert.Equal(t, "[13:04:05] ℹ️ Running: unify build\n", loud.String())
}

func TestConsoleLogger_NilWriter(t *testing.T) {
	l := NewConsoleLogger(nil, true)
	assert.NotPanics(t, func() { l.Error("discarded") })
	assert.True(t, l.Verbose())
}
