package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"ebt/internal/domain"
)

// maxFailuresShown is how many failing validations are listed per example
const maxFailuresShown = 3

var rule = strings.Repeat("=", 60)

// Summary is the pass/fail partition of a run
type Summary struct {
	Total  int
	Passed []domain.TestResult
	Failed []domain.TestResult
}

// Summarize partitions results into passed and failed examples
func Summarize(results []domain.TestResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed() {
			s.Passed = append(s.Passed, r)
		} else {
			s.Failed = append(s.Failed, r)
		}
	}
	return s
}

// ExitCode is 0 when no example failed and 1 otherwise
func (s Summary) ExitCode() int {
	if len(s.Failed) == 0 {
		return 0
	}
	return 1
}

// Reporter prints the end-of-run report
type Reporter struct {
	out io.Writer
}

// NewReporter creates a Reporter writing to out, or stdout when out is nil
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out}
}

// Print writes the summary, failed and passed sections and returns the
// summary the exit code is derived from
func (r *Reporter) Print(results []domain.TestResult, totalTime time.Duration) Summary {
	summary := Summarize(results)

	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, bold.Sprint("📊 TEST SUMMARY REPORT"))
	fmt.Fprintln(r.out, rule)

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "⏱️  Total execution time: %dms\n", totalTime.Milliseconds())
	fmt.Fprintf(r.out, "📝 Examples tested: %d\n", summary.Total)
	fmt.Fprintf(r.out, "%s %d\n", green.Sprint("✅ Passed:"), len(summary.Passed))
	fmt.Fprintf(r.out, "%s %d\n", red.Sprint("❌ Failed:"), len(summary.Failed))

	if len(summary.Failed) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, color.New(color.FgRed, color.Bold).Sprint("❌ FAILED TESTS:"))
		for _, result := range summary.Failed {
			r.printFailed(result, red)
		}
	}

	if len(summary.Passed) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, color.New(color.FgGreen, color.Bold).Sprint("✅ PASSED TESTS:"))
		for _, result := range summary.Passed {
			fmt.Fprintf(r.out, "  %s %s (%dms)\n", green.Sprint("•"), result.Config.Name, result.BuildTime.Milliseconds())
			fmt.Fprintf(r.out, "    Validations: %d/%d passed\n", result.ValidationsPassed, result.ValidationsTotal)
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, rule)
	if len(summary.Failed) == 0 {
		fmt.Fprintln(r.out, color.New(color.FgGreen, color.Bold).Sprint("🎉 ALL TESTS PASSED!"))
	} else {
		fmt.Fprintln(r.out, color.New(color.FgRed, color.Bold).Sprintf("💥 %d TEST(S) FAILED", len(summary.Failed)))
	}

	return summary
}

func (r *Reporter) printFailed(result domain.TestResult, red *color.Color) {
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "  %s %s\n", red.Sprint("•"), result.Config.Name)

	if !result.BuildPassed {
		fmt.Fprintf(r.out, "    %s %s\n", red.Sprint("Build failed:"), result.Error)
	}

	if result.ValidationsPassed < result.ValidationsTotal {
		fmt.Fprintf(r.out, "    %s %d/%d passed\n", red.Sprint("Validations:"), result.ValidationsPassed, result.ValidationsTotal)

		failed := result.FailedValidations()
		for i, v := range failed {
			if i == maxFailuresShown {
				break
			}
			fmt.Fprintf(r.out, "      - %s\n", v.Message)
		}
		if len(failed) > maxFailuresShown {
			fmt.Fprintf(r.out, "      ... and %d more\n", len(failed)-maxFailuresShown)
		}
	}
}
