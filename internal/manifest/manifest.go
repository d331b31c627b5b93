// Package manifest loads the test manifest: global settings plus the ordered
// list of examples to build and validate.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"ebt/internal/validation"
)

// DirectCLI is the cliPath value meaning "run example commands unmodified"
const DirectCLI = "unify"

// Manifest is the parsed test manifest
type Manifest struct {
	Path     string
	Global   Global
	Examples []Example // In declaration order
}

// Global holds settings shared by every example
type Global struct {
	CLIPath string `yaml:"cliPath" json:"cliPath"`
}

// Example is one declared build-and-validate scenario
type Example struct {
	Key         string            `yaml:"-" json:"key"`
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description" json:"description"`
	Command     string            `yaml:"command" json:"command"`
	Output      string            `yaml:"output" json:"output"`
	TimeoutMS   int               `yaml:"timeout" json:"timeout"`
	Validations []validation.Spec `yaml:"validations" json:"validations"`
}

// Timeout returns the build timeout of the example
func (e Example) Timeout() time.Duration {
	return time.Duration(e.TimeoutMS) * time.Millisecond
}

// LoadError is returned when the manifest cannot be read or is invalid.
// It is fatal: no example runs without a complete manifest.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load manifest %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// document mirrors the top level of the manifest. Examples stays a node so
// the mapping order survives decoding.
type document struct {
	Global   *Global   `yaml:"global"`
	Examples yaml.Node `yaml:"examples"`
}

// rawExample uses pointers to tell missing fields from zero values
type rawExample struct {
	Name        *string            `yaml:"name" json:"name"`
	Description string             `yaml:"description" json:"description"`
	Command     *string            `yaml:"command" json:"command"`
	Output      *string            `yaml:"output" json:"output"`
	Timeout     *int               `yaml:"timeout" json:"timeout"`
	Validations *[]validation.Spec `yaml:"validations" json:"validations"`
}

// Load reads and parses the manifest at path. The document may be JSON or
// YAML.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	m, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	m.Path = path
	return m, nil
}

// Parse parses manifest content. Valid JSON is decoded as JSON; anything
// else is decoded as YAML.
func Parse(data []byte) (*Manifest, error) {
	if isJSON(data) {
		return parseJSON(data)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid manifest syntax: %w", err)
	}

	if err := checkGlobal(doc.Global); err != nil {
		return nil, err
	}

	if doc.Examples.Kind == 0 {
		return nil, errMissingExamples
	}
	if doc.Examples.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: examples must be a mapping of name to example", doc.Examples.Line)
	}

	examples, err := parseExamples(&doc.Examples)
	if err != nil {
		return nil, err
	}

	return &Manifest{
		Global:   *doc.Global,
		Examples: examples,
	}, nil
}

var errMissingExamples = errors.New("missing required field examples")

func checkGlobal(global *Global) error {
	if global == nil || global.CLIPath == "" {
		return errors.New("missing required field global.cliPath")
	}
	return nil
}

func parseExamples(node *yaml.Node) ([]Example, error) {
	examples := make([]Example, 0, len(node.Content)/2)
	seen := make(map[string]bool)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value

		if seen[key] {
			return nil, fmt.Errorf("line %d: duplicate example %q", keyNode.Line, key)
		}
		seen[key] = true

		var raw rawExample
		if err := valueNode.Decode(&raw); err != nil {
			return nil, fmt.Errorf("example %q: %w", key, err)
		}

		example, err := raw.toExample(key)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", valueNode.Line, err)
		}
		examples = append(examples, example)
	}

	return examples, nil
}

func (r rawExample) toExample(key string) (Example, error) {
	missing := func(field string) error {
		return fmt.Errorf("example %q: missing required field %q", key, field)
	}

	switch {
	case r.Name == nil:
		return Example{}, missing("name")
	case r.Command == nil:
		return Example{}, missing("command")
	case r.Output == nil:
		return Example{}, missing("output")
	case r.Timeout == nil:
		return Example{}, missing("timeout")
	case r.Validations == nil:
		return Example{}, missing("validations")
	}

	if *r.Output == "" || filepath.Clean(*r.Output) == "." {
		return Example{}, fmt.Errorf("example %q: output must be a directory below the harness root, got %q", key, *r.Output)
	}

	if *r.Timeout <= 0 {
		return Example{}, fmt.Errorf("example %q: timeout must be a positive number of milliseconds, got %d", key, *r.Timeout)
	}

	return Example{
		Key:         key,
		Name:        *r.Name,
		Description: r.Description,
		Command:     *r.Command,
		Output:      *r.Output,
		TimeoutMS:   *r.Timeout,
		Validations: *r.Validations,
	}, nil
}
