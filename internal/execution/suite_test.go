package execution

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ebt/internal/config"
	"ebt/internal/logger"
	"ebt/internal/manifest"
	"ebt/internal/validation"
)

// fakeExecutor records invocations and runs a per-command build function
type fakeExecutor struct {
	builds   map[string]func() error
	commands []string
	dirs     []string
	timeouts []time.Duration
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{builds: make(map[string]func() error)}
}

func (f *fakeExecutor) On(command string, build func() error) {
	f.builds[command] = build
}

func (f *fakeExecutor) Run(ctx context.Context, command, dir string, timeout time.Duration) (Output, error) {
	f.commands = append(f.commands, command)
	f.dirs = append(f.dirs, dir)
	f.timeouts = append(f.timeouts, timeout)
	if build, ok := f.builds[command]; ok {
		if err := build(); err != nil {
			return Output{ExitCode: 1}, err
		}
	}
	return Output{}, nil
}

type fakeProgress struct {
	updates  [][2]int
	finished bool
}

func (p *fakeProgress) Update(passed, failed int) {
	p.updates = append(p.updates, [2]int{passed, failed})
}

func (p *fakeProgress) Finish() {
	p.finished = true
}

func writeOutput(t *testing.T, root, rel, content string) func() error {
	return func() error {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		return os.WriteFile(path, []byte(content), 0644)
	}
}

func newTestSuite(t *testing.T, cliPath string, executor Executor) (*Suite, *config.Config, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	cfg := config.New()
	cfg.RootDir = t.TempDir()

	var logs bytes.Buffer
	m := &manifest.Manifest{Global: manifest.Global{CLIPath: cliPath}}
	suite := NewSuite(cfg, m, executor, validation.NewValidator(), logger.NewConsoleLogger(&logs, true))
	return suite, cfg, &logs
}

func example(key, command, output string, specs ...validation.Spec) manifest.Example {
	return manifest.Example{
		Key:         key,
		Name:        key + " example",
		Command:     command,
		Output:      output,
		TimeoutMS:   1000,
		Validations: specs,
	}
}

func TestSuite_RunMixedResults(t *testing.T) {
	executor := newFakeExecutor()
	suite, cfg, _ := newTestSuite(t, manifest.DirectCLI, executor)
	root := cfg.GetRootDir()

	executor.On("unify build a", writeOutput(t, root, "out/a/index.html", "hello world"))
	executor.On("unify build b", writeOutput(t, root, "out/b/index.html", "hello world"))
	executor.On("unify build c", func() error {
		return &CommandFailedError{ExitCode: 2, Stderr: "unknown flag"}
	})

	progress := &fakeProgress{}
	suite.SetProgress(progress)

	results := suite.Run(context.Background(), []manifest.Example{
		example("a", "unify build a", "out/a",
			validation.Spec{Type: "file-exists", Files: []string{"index.html"}},
			validation.Spec{Type: "content-includes", File: "index.html", MustContain: []string{"hello"}}),
		example("b", "unify build b", "out/b",
			validation.Spec{Type: "content-includes", File: "index.html", MustNotContain: []string{"world"}}),
		example("c", "unify build c", "out/c",
			validation.Spec{Type: "file-exists", Files: []string{"index.html"}}),
	})

	require.Len(t, results, 3)

	a := results[0]
	assert.Equal(t, "a", a.Name)
	assert.True(t, a.BuildPassed)
	assert.Equal(t, 2, a.ValidationsTotal)
	assert.Equal(t, 2, a.ValidationsPassed)
	assert.Empty(t, a.Error)
	assert.True(t, a.Passed())

	b := results[1]
	assert.True(t, b.BuildPassed)
	assert.Equal(t, 1, b.ValidationsTotal)
	assert.Equal(t, 0, b.ValidationsPassed)
	assert.False(t, b.Passed())

	c := results[2]
	assert.False(t, c.BuildPassed)
	assert.Equal(t, 0, c.ValidationsTotal, "validation is skipped when the build fails")
	assert.Empty(t, c.ValidationResults)
	assert.Equal(t, "Command failed with code 2\nstderr: unknown flag", c.Error)
	assert.Zero(t, c.BuildTime)

	assert.Equal(t, []string{"unify build a", "unify build b", "unify build c"}, executor.commands)
	for _, dir := range executor.dirs {
		assert.Equal(t, root, dir)
	}
	assert.Equal(t, time.Second, executor.timeouts[0])

	assert.Equal(t, [][2]int{{1, 0}, {1, 1}, {1, 2}}, progress.updates)
	assert.True(t, progress.finished)
	assert.Len(t, suite.Results(), 3)
}

func TestSuite_CountersMatchResults(t *testing.T) {
	executor := newFakeExecutor()
	suite, cfg, _ := newTestSuite(t, manifest.DirectCLI, executor)
	executor.On("build", writeOutput(t, cfg.GetRootDir(), "site/index.html", "<h1>Home</h1>"))

	result := suite.RunExample(context.Background(), example("site", "build", "site",
		validation.Spec{Type: "file-exists", Files: []string{"index.html", "missing.css"}},
		validation.Spec{Type: "checksum"},
		validation.Spec{Type: "content-includes", File: "index.html", MustContain: []string{"<h1>", "xyz"}},
	))

	require.True(t, result.BuildPassed)
	assert.Equal(t, len(result.ValidationResults), result.ValidationsTotal)
	passed := 0
	for _, v := range result.ValidationResults {
		if v.Passed {
			passed++
		}
	}
	assert.Equal(t, passed, result.ValidationsPassed)
	assert.Equal(t, 5, result.ValidationsTotal)
	assert.Equal(t, 2, result.ValidationsPassed)
	assert.LessOrEqual(t, result.ValidationsPassed, result.ValidationsTotal)
}

func TestSuite_CleansPreviousOutput(t *testing.T) {
	executor := newFakeExecutor()
	suite, cfg, logs := newTestSuite(t, manifest.DirectCLI, executor)
	root := cfg.GetRootDir()

	require.NoError(t, writeOutput(t, root, "out/site/stale.html", "old")())

	ex := example("site", "build", "out/site",
		validation.Spec{Type: "file-exists", Files: []string{"stale.html"}})

	first := suite.RunExample(context.Background(), ex)
	second := suite.RunExample(context.Background(), ex)

	assert.True(t, first.BuildPassed)
	assert.Equal(t, 0, first.ValidationsPassed, "stale output must be removed before the build")
	assert.Equal(t, first.Passed(), second.Passed())
	assert.Equal(t, first.ValidationsPassed, second.ValidationsPassed)
	assert.NoDirExists(t, filepath.Join(root, "out/site"))
	assert.Contains(t, logs.String(), "Cleaned previous output: out/site")
}

func TestSuite_NeverCleansHarnessRoot(t *testing.T) {
	tests := []struct {
		name   string
		output func(root string) string
	}{
		{"absolute root", func(root string) string { return root }},
		{"parent of root", func(root string) string { return ".." }},
		{"ancestor of root", func(root string) string { return filepath.Dir(filepath.Dir(root)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := newFakeExecutor()
			suite, cfg, _ := newTestSuite(t, manifest.DirectCLI, executor)
			root := cfg.GetRootDir()
			require.NoError(t, writeOutput(t, root, "test-config.json", "{}")())

			result := suite.RunExample(context.Background(), example("bad", "build", tt.output(root)))

			assert.False(t, result.BuildPassed)
			assert.Contains(t, result.Error, "refusing to clean output")
			assert.Empty(t, executor.commands)
			assert.FileExists(t, filepath.Join(root, "test-config.json"))
		})
	}
}

func TestSuite_ResolveCommand(t *testing.T) {
	t.Run("direct cli leaves command unchanged", func(t *testing.T) {
		suite, _, _ := newTestSuite(t, manifest.DirectCLI, newFakeExecutor())
		assert.Equal(t, "unify build --source unify-src", suite.ResolveCommand("unify build --source unify-src"))
	})

	t.Run("script path replaces first occurrence only", func(t *testing.T) {
		suite, cfg, _ := newTestSuite(t, "bin/cli.js", newFakeExecutor())
		script := filepath.Join(cfg.GetRootDir(), "bin/cli.js")
		assert.Equal(t,
			"node "+script+" build --source unify-src",
			suite.ResolveCommand("unify build --source unify-src"),
		)
	})

	t.Run("absolute script path", func(t *testing.T) {
		suite, _, _ := newTestSuite(t, "/opt/unify/bin/cli.js", newFakeExecutor())
		assert.Equal(t, "node /opt/unify/bin/cli.js serve", suite.ResolveCommand("unify serve"))
	})

	t.Run("command without token is unchanged", func(t *testing.T) {
		suite, _, _ := newTestSuite(t, "bin/cli.js", newFakeExecutor())
		assert.Equal(t, "make site", suite.ResolveCommand("make site"))
	})
}

func TestSuite_ExecutesResolvedCommand(t *testing.T) {
	executor := newFakeExecutor()
	suite, cfg, _ := newTestSuite(t, "../cli/bin/cli.js", executor)

	suite.RunExample(context.Background(), example("a", "unify build", "out", validation.Spec{Type: "file-exists", Files: []string{"index.html"}}))

	require.Len(t, executor.commands, 1)
	assert.Equal(t, "node "+filepath.Join(filepath.Dir(cfg.GetRootDir()), "cli/bin/cli.js")+" build", executor.commands[0])
}

func TestSuite_TimeoutFailsExample(t *testing.T) {
	suite, _, logs := newTestSuite(t, manifest.DirectCLI, NewRunner(config.New()))

	ex := example("slow", "sleep 5", "out/slow", validation.Spec{Type: "file-exists", Files: []string{"index.html"}})
	ex.TimeoutMS = 100

	result := suite.RunExample(context.Background(), ex)

	assert.False(t, result.BuildPassed)
	assert.Contains(t, result.Error, "timed out")
	assert.Equal(t, 0, result.ValidationsTotal)
	assert.Contains(t, logs.String(), "Build failed: Command timed out after 100ms")
}

func TestSuite_RealBuildCommand(t *testing.T) {
	suite, cfg, _ := newTestSuite(t, manifest.DirectCLI, NewRunner(config.New()))

	result := suite.RunExample(context.Background(), example("real",
		"mkdir -p dist && printf '<title>Real</title>' > dist/index.html", "dist",
		validation.Spec{Type: "content-includes", File: "index.html", MustContain: []string{"<title>Real</title>"}}))

	assert.True(t, result.Passed(), result.Error)
	assert.FileExists(t, filepath.Join(cfg.GetRootDir(), "dist/index.html"))
}

func TestSuite_FailureDoesNotStopLaterExamples(t *testing.T) {
	executor := newFakeExecutor()
	suite, cfg, _ := newTestSuite(t, manifest.DirectCLI, executor)
	executor.On("first", func() error { return errors.New("boom") })
	executor.On("second", writeOutput(t, cfg.GetRootDir(), "two/index.html", "ok"))

	results := suite.Run(context.Background(), []manifest.Example{
		example("one", "first", "one"),
		example("two", "second", "two", validation.Spec{Type: "file-exists", Files: []string{"index.html"}}),
	})

	require.Len(t, results, 2)
	assert.False(t, results[0].Passed())
	assert.Equal(t, "boom", results[0].Error)
	assert.True(t, results[1].Passed())
}

func TestSuite_LogLines(t *testing.T) {
	executor := newFakeExecutor()
	suite, cfg, logs := newTestSuite(t, manifest.DirectCLI, executor)
	executor.On("build", writeOutput(t, cfg.GetRootDir(), "site/index.html", "x"))

	ex := example("site", "build", "site", validation.Spec{Type: "file-exists", Files: []string{"index.html", "nope.html"}})
	ex.Description = "A plain site"
	suite.RunExample(context.Background(), ex)

	out := logs.String()
	assert.Contains(t, out, "🧪 Testing: site example")
	assert.Contains(t, out, "Description: A plain site")
	assert.Contains(t, out, "Running: build in "+cfg.GetRootDir())
	assert.Contains(t, out, "✅ Build completed in ")
	assert.Contains(t, out, "✅   File index.html exists")
	assert.Contains(t, out, "❌   File nope.html missing")
}
