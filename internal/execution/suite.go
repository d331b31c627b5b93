package execution

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ebt/internal/config"
	"ebt/internal/domain"
	"ebt/internal/logger"
	"ebt/internal/manifest"
	"ebt/internal/validation"
)

// cliToken is the build tool invocation replaced in example commands when
// the manifest points at a script instead of an installed binary
const cliToken = "unify"

// Suite builds and validates manifest examples one at a time, in order.
// A Suite is created once per run and owns the run's start time and results.
type Suite struct {
	config    *config.Config
	manifest  *manifest.Manifest
	executor  Executor
	validator *validation.Validator
	log       *logger.ConsoleLogger
	progress  Progress

	startTime time.Time
	results   []domain.TestResult
	passed    int
	failed    int
}

// NewSuite creates a new Suite; the run clock starts here
func NewSuite(
	cfg *config.Config,
	m *manifest.Manifest,
	executor Executor,
	validator *validation.Validator,
	log *logger.ConsoleLogger,
) *Suite {
	return &Suite{
		config:    cfg,
		manifest:  m,
		executor:  executor,
		validator: validator,
		log:       log,
		startTime: time.Now(),
	}
}

// SetProgress sets the progress display for the suite
func (s *Suite) SetProgress(progress Progress) {
	s.progress = progress
}

// Elapsed returns the wall-clock time since the suite was created
func (s *Suite) Elapsed() time.Duration {
	return time.Since(s.startTime)
}

// Results returns the results collected so far
func (s *Suite) Results() []domain.TestResult {
	return s.results
}

// Run tests each example in order. One example failing never stops the
// others.
func (s *Suite) Run(ctx context.Context, examples []manifest.Example) []domain.TestResult {
	s.log.Plain("🚀 Starting unify examples E2E test suite")

	for _, example := range examples {
		result := s.RunExample(ctx, example)
		s.results = append(s.results, result)

		if result.Passed() {
			s.passed++
		} else {
			s.failed++
		}
		if s.progress != nil {
			s.progress.Update(s.passed, s.failed)
		}
	}

	if s.progress != nil {
		s.progress.Finish()
	}
	return s.results
}

// RunExample cleans the example's output, builds it and, when the build
// succeeds, validates the output
func (s *Suite) RunExample(ctx context.Context, example manifest.Example) domain.TestResult {
	result := domain.NewTestResult(example)

	s.log.Info("🧪 Testing: %s", example.Name)
	s.log.Info("Description: %s", example.Description)

	outputPath := s.config.ResolvePath(example.Output)
	if err := s.clean(outputPath, example.Output); err != nil {
		result.Error = err.Error()
		s.log.Error("Build failed: %s", result.Error)
		return *result
	}

	root := s.config.GetRootDir()
	command := s.ResolveCommand(example.Command)
	s.log.Info("Running: %s in %s", command, root)

	buildStart := time.Now()
	if _, err := s.executor.Run(ctx, command, root, example.Timeout()); err != nil {
		result.Error = err.Error()
		s.log.Error("Build failed: %s", result.Error)
		return *result
	}
	result.BuildPassed = true
	result.BuildTime = time.Since(buildStart)
	s.log.Success("Build completed in %dms", result.BuildTime.Milliseconds())

	result.SetValidations(s.validator.Validate(outputPath, example.Validations))
	for _, v := range result.ValidationResults {
		if v.Passed {
			s.log.Success("  %s", v.Message)
		} else {
			s.log.Error("  %s", v.Message)
		}
	}

	return *result
}

// ResolveCommand returns the command to run for an example. With the
// "unify" cliPath the command is used as is; otherwise the first "unify" in
// the command is replaced by a node invocation of the configured script,
// resolved against the harness root.
func (s *Suite) ResolveCommand(command string) string {
	cliPath := s.manifest.Global.CLIPath
	if cliPath == manifest.DirectCLI {
		return command
	}
	invocation := fmt.Sprintf("%s %s", s.config.NodeBinary, s.config.ResolvePath(cliPath))
	return strings.Replace(command, cliToken, invocation, 1)
}

// clean removes output left over from a previous run. An output that is the
// harness root or one of its ancestors is never removed.
func (s *Suite) clean(path, display string) error {
	if containsRoot(path, s.config.GetRootDir()) {
		return fmt.Errorf("refusing to clean output %s: it contains the harness root", display)
	}
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("check previous output %s: %w", display, err)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("clean previous output %s: %w", display, err)
	}
	s.log.Info("Cleaned previous output: %s", display)
	return nil
}

func containsRoot(path, root string) bool {
	rel, err := filepath.Rel(path, root)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
