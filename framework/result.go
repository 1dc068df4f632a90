package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Results accumulates the outcome of a full suite run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult is the outcome of one test.
type TestResult struct {
	TestID TestID
	Errors []error
}

// OK reports whether the whole run passed.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID is the slash-joined path of a test within the suite tree.
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	skipColor = color.New(color.FgYellow)
)

// PrintResults writes a human-readable summary of a suite run.
func PrintResults(w io.Writer, results Results) {
	if results.OK() {
		passColor.Fprintf(w, "All %d tests passed\n", len(results.Tests))
		return
	}
	failColor.Fprintf(w, "%d of %d tests failed:\n", len(results.Failures), len(results.Tests))
	for _, failure := range results.Failures {
		fmt.Fprintf(w, "  %s\n", failure.TestID)
		for _, err := range failure.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}
}
