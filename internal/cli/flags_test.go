package cli

import (
	"testing"

	"ebt/internal/config"
)

func TestFlags_ToConfigFlags(t *testing.T) {
	flags := Flags{
		Verbose:         true,
		Progress:        true,
		Filter:          "blog*",
		ConfigPath:      "e2e.yaml",
		Root:            "/harness",
		ShowValidations: true,
	}

	want := config.Flags{
		Verbose:         true,
		Progress:        true,
		Filter:          "blog*",
		ConfigPath:      "e2e.yaml",
		Root:            "/harness",
		ShowValidations: true,
	}

	if got := flags.ToConfigFlags(); got != want {
		t.Errorf("ToConfigFlags() = %+v, want %+v", got, want)
	}
}
