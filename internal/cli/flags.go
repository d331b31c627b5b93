package cli

import "ebt/internal/config"

// Flags holds command-line flags
type Flags struct {
	Verbose         bool
	Progress        bool
	Filter          string
	ConfigPath      string
	Root            string
	ShowValidations bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Verbose:         f.Verbose,
		Progress:        f.Progress,
		Filter:          f.Filter,
		ConfigPath:      f.ConfigPath,
		Root:            f.Root,
		ShowValidations: f.ShowValidations,
	}
}
