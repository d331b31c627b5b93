package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"ebt/internal/manifest"
	"ebt/internal/validation"
)

// Formatter formats and displays manifest listings
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out, or stdout when out is nil
func NewFormatter(out io.Writer) *Formatter {
	if out == nil {
		out = os.Stdout
	}
	return &Formatter{out: out}
}

// PrintExampleList prints the examples of a manifest as a tree, optionally
// with each example's validations
func (f *Formatter) PrintExampleList(examples []manifest.Example, showValidations bool) {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	fmt.Fprintln(f.out, color.GreenString("Found %d example(s):", len(examples)))
	fmt.Fprintln(f.out)

	for i, example := range examples {
		isLast := i == len(examples)-1

		branch, indent := "├── ", "│   "
		if isLast {
			branch, indent = "└── ", "    "
		}

		fmt.Fprintf(f.out, "%s%s %s\n", branch, cyan.Sprint(example.Key),
			fmt.Sprintf("(%s, output: %s, timeout: %dms, %d validation(s))",
				example.Name, example.Output, example.TimeoutMS, len(example.Validations)))

		if !showValidations {
			continue
		}

		if len(example.Validations) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, color.RedString("(no validations)"))
		}
		for j, spec := range example.Validations {
			prefix := "├── "
			if j == len(example.Validations)-1 {
				prefix = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", indent, prefix, yellow.Sprint(DescribeSpec(spec)))
		}

		if !isLast {
			fmt.Fprintln(f.out, "│")
		}
	}
}

// DescribeSpec renders a validation entry on one line
func DescribeSpec(spec validation.Spec) string {
	switch c := spec.Check().(type) {
	case validation.FileExists:
		return fmt.Sprintf("%s: %s", c.Kind(), strings.Join(c.Files, ", "))
	case validation.ContentIncludes:
		parts := []string{fmt.Sprintf("%s: %s", c.Kind(), c.File)}
		if len(c.MustContain) > 0 {
			parts = append(parts, fmt.Sprintf("%d required", len(c.MustContain)))
		}
		if len(c.MustNotContain) > 0 {
			parts = append(parts, fmt.Sprintf("%d forbidden", len(c.MustNotContain)))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%s (unknown validation type)", c.Kind())
	}
}
