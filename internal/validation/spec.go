// Package validation checks build output against the declarative
// expectations of a manifest example.
package validation

// Validation kinds as they appear in the manifest's "type" field
const (
	KindFileExists      = "file-exists"
	KindContentIncludes = "content-includes"
	// KindContentExcludes only appears on results of mustNotContain checks
	KindContentExcludes = "content-excludes"
)

// Spec is a validation entry as declared in the manifest. The Type tag
// selects which of the remaining fields are meaningful.
type Spec struct {
	Type           string   `yaml:"type" json:"type"`
	Files          []string `yaml:"files,omitempty" json:"files,omitempty"`
	File           string   `yaml:"file,omitempty" json:"file,omitempty"`
	MustContain    []string `yaml:"mustContain,omitempty" json:"mustContain,omitempty"`
	MustNotContain []string `yaml:"mustNotContain,omitempty" json:"mustNotContain,omitempty"`
}

// Check is one of FileExists, ContentIncludes or Unknown
type Check interface {
	Kind() string
}

// FileExists requires every listed path to exist under the output directory
type FileExists struct {
	Files []string
}

// ContentIncludes requires File to contain every MustContain string and none
// of the MustNotContain strings
type ContentIncludes struct {
	File           string
	MustContain    []string
	MustNotContain []string
}

// Unknown is a validation whose type tag is not recognised. It always fails.
type Unknown struct {
	Type string
}

func (FileExists) Kind() string      { return KindFileExists }
func (ContentIncludes) Kind() string { return KindContentIncludes }
func (u Unknown) Kind() string       { return u.Type }

// Check returns the variant selected by the spec's type tag
func (s Spec) Check() Check {
	switch s.Type {
	case KindFileExists:
		return FileExists{Files: s.Files}
	case KindContentIncludes:
		return ContentIncludes{
			File:           s.File,
			MustContain:    s.MustContain,
			MustNotContain: s.MustNotContain,
		}
	default:
		return Unknown{Type: s.Type}
	}
}

// Result is the outcome of a single atomic check
type Result struct {
	Kind    string `json:"kind"`
	File    string `json:"file,omitempty"`
	Check   string `json:"check,omitempty"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}
