package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Validator runs manifest validations against a build output directory
type Validator struct{}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate runs every spec against baseDir and returns one result per atomic
// check, in declared order. A failing or erroring check never stops the
// remaining ones.
func (v *Validator) Validate(baseDir string, specs []Spec) []Result {
	results := make([]Result, 0, len(specs))
	for _, spec := range specs {
		results = append(results, v.run(baseDir, spec.Check())...)
	}
	return results
}

func (v *Validator) run(baseDir string, check Check) []Result {
	switch c := check.(type) {
	case FileExists:
		return v.fileExists(baseDir, c)
	case ContentIncludes:
		return v.contentIncludes(baseDir, c)
	default:
		return []Result{{
			Kind:    check.Kind(),
			Passed:  false,
			Message: fmt.Sprintf("Unknown validation type: %s", check.Kind()),
		}}
	}
}

func (v *Validator) fileExists(baseDir string, c FileExists) []Result {
	if c.Files == nil {
		return []Result{{
			Kind:    KindFileExists,
			Passed:  false,
			Message: "Validation error: file-exists requires a files list",
		}}
	}

	results := make([]Result, 0, len(c.Files))
	for _, file := range c.Files {
		_, err := os.Stat(filepath.Join(baseDir, file))
		exists := err == nil

		message := fmt.Sprintf("File %s missing", file)
		if exists {
			message = fmt.Sprintf("File %s exists", file)
		}
		results = append(results, Result{
			Kind:    KindFileExists,
			File:    file,
			Passed:  exists,
			Message: message,
		})
	}
	return results
}

func (v *Validator) contentIncludes(baseDir string, c ContentIncludes) []Result {
	data, err := os.ReadFile(filepath.Join(baseDir, c.File))
	if err != nil {
		return []Result{{
			Kind:    KindContentIncludes,
			File:    c.File,
			Passed:  false,
			Message: fmt.Sprintf("Validation error: %v", err),
		}}
	}
	content := string(data)

	results := make([]Result, 0, len(c.MustContain)+len(c.MustNotContain))
	for _, required := range c.MustContain {
		contains := strings.Contains(content, required)
		message := fmt.Sprintf("Content missing \"%s\"", required)
		if contains {
			message = fmt.Sprintf("Content contains \"%s\"", required)
		}
		results = append(results, Result{
			Kind:    KindContentIncludes,
			File:    c.File,
			Check:   fmt.Sprintf("must contain \"%s\"", required),
			Passed:  contains,
			Message: message,
		})
	}

	for _, forbidden := range c.MustNotContain {
		contains := strings.Contains(content, forbidden)
		message := fmt.Sprintf("Content correctly excludes \"%s\"", forbidden)
		if contains {
			message = fmt.Sprintf("Content incorrectly contains \"%s\"", forbidden)
		}
		results = append(results, Result{
			Kind:    KindContentExcludes,
			File:    c.File,
			Check:   fmt.Sprintf("must not contain \"%s\"", forbidden),
			Passed:  !contains,
			Message: message,
		})
	}

	return results
}
