package manifest

import (
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()
	examples := []Example{
		{Key: "basic-site", Name: "Basic Site"},
		{Key: "blog-markdown", Name: "Blog with Markdown"},
		{Key: "blog-layouts", Name: "Blog Layouts"},
		{Key: "docs", Name: "Documentation"},
	}

	tests := []struct {
		name     string
		pattern  string
		expected []string
	}{
		{name: "empty pattern returns all", pattern: "", expected: []string{"basic-site", "blog-markdown", "blog-layouts", "docs"}},
		{name: "exact key", pattern: "docs", expected: []string{"docs"}},
		{name: "prefix wildcard", pattern: "blog-*", expected: []string{"blog-markdown", "blog-layouts"}},
		{name: "substring wildcard", pattern: "*Markdown*", expected: []string{"blog-markdown"}},
		{name: "plain substring", pattern: "site", expected: []string{"basic-site"}},
		{name: "matches display name", pattern: "Documentation", expected: []string{"docs"}},
		{name: "question mark", pattern: "doc?", expected: []string{"docs"}},
		{name: "no matches", pattern: "*nothing*", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(examples, tt.pattern)
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d matches, got %d", len(tt.expected), len(result))
			}
			for i, key := range tt.expected {
				if result[i].Key != key {
					t.Errorf("match %d: expected %s, got %s", i, key, result[i].Key)
				}
			}
		})
	}
}
