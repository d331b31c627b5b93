package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ebt/internal/config"
	"ebt/internal/manifest"
	"ebt/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config *config.Config
	filter *manifest.Filter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, filter *manifest.Filter) *ListCommand {
	return &ListCommand{
		config: cfg,
		filter: filter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	m, err := manifest.Load(lc.config.GetManifestPath())
	if err != nil {
		return err
	}

	// Filter examples
	examples := lc.filter.FilterByName(m.Examples, lc.config.Flags.Filter)

	if len(examples) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No examples found")
		return nil
	}

	ui.NewFormatter(cmd.OutOrStdout()).PrintExampleList(examples, lc.config.Flags.ShowValidations)
	return nil
}
