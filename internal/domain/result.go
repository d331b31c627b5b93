package domain

import (
	"time"

	"ebt/internal/manifest"
	"ebt/internal/validation"
)

// TestResult represents the outcome of building and validating one example
type TestResult struct {
	Name              string              `json:"name"`   // Manifest key of the example
	Config            manifest.Example    `json:"config"` // Example definition the result was produced from
	BuildPassed       bool                `json:"build_passed"`
	BuildTime         time.Duration       `json:"build_time"`
	ValidationResults []validation.Result `json:"validation_results"`
	ValidationsPassed int                 `json:"validations_passed"`
	ValidationsTotal  int                 `json:"validations_total"`
	Error             string              `json:"error,omitempty"` // Build error, empty when the build succeeded
}

// NewTestResult creates a result for an example that has not been built yet
func NewTestResult(example manifest.Example) *TestResult {
	return &TestResult{
		Name:              example.Key,
		Config:            example,
		ValidationResults: []validation.Result{},
	}
}

// SetValidations records the validation results and derives the counters from them
func (r *TestResult) SetValidations(results []validation.Result) {
	r.ValidationResults = results
	r.ValidationsTotal = len(results)
	r.ValidationsPassed = 0
	for _, v := range results {
		if v.Passed {
			r.ValidationsPassed++
		}
	}
}

// Passed reports whether the build succeeded and every validation passed
func (r TestResult) Passed() bool {
	return r.BuildPassed && r.ValidationsPassed == r.ValidationsTotal
}

// FailedValidations returns the failing validation results in declared order
func (r TestResult) FailedValidations() []validation.Result {
	var failed []validation.Result
	for _, v := range r.ValidationResults {
		if !v.Passed {
			failed = append(failed, v)
		}
	}
	return failed
}

// RunMeta contains metadata about a harness run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	Manifest        string  `json:"manifest"`
	TotalExamples   int     `json:"total_examples"`
	PassedExamples  int     `json:"passed_examples"`
	FailedExamples  int     `json:"failed_examples"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunRecord is the complete persisted structure of a harness run
type RunRecord struct {
	Meta    RunMeta      `json:"meta"`
	Results []TestResult `json:"results"`
}

// Failed returns the results of examples that did not pass
func (rr *RunRecord) Failed() []TestResult {
	var failed []TestResult
	for _, r := range rr.Results {
		if !r.Passed() {
			failed = append(failed, r)
		}
	}
	return failed
}
