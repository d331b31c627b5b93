package commands

import (
	"ebt/internal/cli"
	"ebt/internal/config"
	"ebt/internal/manifest"
	"ebt/internal/storage"
	"ebt/internal/ui"
	"ebt/internal/validation"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	filter := manifest.NewFilter()
	validator := validation.NewValidator()
	jsonStorage := storage.NewJSONStorage(cfg)
	viewer := ui.NewFailureViewer()

	return &Commands{
		Run:      NewRunCommand(cfg, filter, validator, jsonStorage),
		List:     NewListCommand(cfg, filter),
		Failures: NewFailuresCommand(cfg, jsonStorage, viewer),
	}
}

// Register registers all commands with cobra. The root command itself runs
// the examples, so `ebt` and `ebt run` are equivalent.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Update config with flags after parsing
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.Apply(flags.ToConfigFlags())
		return nil
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Stream build output and show info logs")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Path to the test manifest (default <root>/"+config.DefaultManifestFile+")")
	rootCmd.PersistentFlags().StringVar(&flags.Root, "root", "", "Harness root; commands run and outputs resolve here (default current directory)")
	rootCmd.PersistentFlags().StringVarP(&flags.Filter, "filter", "f", "", "Filter examples by key or name pattern (supports wildcards, e.g. 'blog*' or '*docs*')")

	rootCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar while testing (terminal only)")
	rootCmd.RunE = c.Run.Execute
	rootCmd.PreRunE = applyFlags

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Build every example and validate its output",
		Long:    "Run each example's build command in manifest order, validate the produced files and print a report",
		Args:    cobra.NoArgs,
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar while testing (terminal only)")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List manifest examples",
		Long:    "Load the manifest and list its examples without building them",
		Args:    cobra.NoArgs,
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().BoolVarP(&flags.ShowValidations, "validations", "c", false, "List each example's validations")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View failed examples interactively",
		Long:    "Display the failed examples of the last run in an interactive viewer",
		Args:    cobra.NoArgs,
		RunE:    c.Failures.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(failuresCmd)
}
