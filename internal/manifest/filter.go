package manifest

import (
	"path/filepath"
	"strings"
)

// Filter selects manifest examples by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the examples whose key or display name matches pattern.
// Supports wildcard patterns like "*blog*" or "basic-?"; a pattern without
// wildcards matches as a substring. Manifest order is preserved.
func (f *Filter) FilterByName(examples []Example, pattern string) []Example {
	if pattern == "" {
		return examples
	}

	var filtered []Example
	for _, example := range examples {
		if matches(pattern, example.Key) || matches(pattern, example.Name) {
			filtered = append(filtered, example)
		}
	}
	return filtered
}

func matches(pattern, name string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// No wildcards: plain substring match
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// filepath.Match is anchored, so "*blog*" style patterns fall back to
	// checking that every literal part appears in the name
	if strings.Contains(pattern, "*") {
		hasPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasPart
	}

	return false
}
