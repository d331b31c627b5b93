package commands

import (
	"errors"
	"fmt"
	"os"

	"ebt/internal/config"
	"ebt/internal/execution"
	"ebt/internal/logger"
	"ebt/internal/manifest"
	"ebt/internal/storage"
	"ebt/internal/ui"
	"ebt/internal/validation"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ErrExamplesFailed is returned by the run command when at least one example
// failed. The report has already been printed.
var ErrExamplesFailed = errors.New("examples failed")

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	filter    *manifest.Filter
	validator *validation.Validator
	storage   storage.Storage
	// executor overrides the shell runner; nil uses execution.NewRunner
	executor execution.Executor
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *manifest.Filter,
	validator *validation.Validator,
	st storage.Storage,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		filter:    filter,
		validator: validator,
		storage:   st,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	log := logger.NewConsoleLogger(out, rc.config.Flags.Verbose)

	if err := rc.config.LoadEnv(); err != nil {
		return err
	}

	lock := storage.NewRunLock(rc.config.GetLockPath())
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	m, err := manifest.Load(rc.config.GetManifestPath())
	if err != nil {
		return err
	}

	examples := rc.filter.FilterByName(m.Examples, rc.config.Flags.Filter)
	if rc.config.Flags.Filter != "" && len(examples) == 0 {
		fmt.Fprintln(out, color.YellowString("No examples match filter %q", rc.config.Flags.Filter))
	}

	executor := rc.executor
	if executor == nil {
		executor = execution.NewRunner(rc.config)
	}

	suite := execution.NewSuite(rc.config, m, executor, rc.validator, log)
	if rc.config.Flags.Progress && !rc.config.Flags.Verbose && ui.IsTerminal(os.Stderr) {
		suite.SetProgress(ui.NewProgressBar(len(examples)))
	}

	results := suite.Run(cmd.Context(), examples)
	summary := ui.NewReporter(out).Print(results, suite.Elapsed())

	// A lost record must not change the exit code of the run
	if _, err := rc.storage.Save(results, suite.Elapsed(), m.Path); err != nil {
		log.Warning("Failed to save run results: %v", err)
	}

	if summary.ExitCode() != 0 {
		return ErrExamplesFailed
	}
	return nil
}
