package controller

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

// caseLine renders the one-line verdict for a case.
func caseLine(result m.PipelineResult) string {
	if result.Verdict == m.Passed {
		return fmt.Sprintf("%s ... %s", result.Case.Name, result.Verdict)
	}

	return fmt.Sprintf("%s ... %s (%s: %s)", result.Case.Name, result.Verdict, result.Outcome.Stage, result.Status())
}

// caseDetail renders the failing stage and its captured diagnostic text.
func caseDetail(result m.PipelineResult, withDiff bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s failed at %s", result.Case.Name, result.Outcome.Stage)

	switch {
	case result.Outcome.TimedOut:
		b.WriteString(" (timed out)")
	case result.Outcome.Stage != m.StageCompare && result.Outcome.ExitCode != 0:
		fmt.Fprintf(&b, " (exit status %d)", result.Outcome.ExitCode)
	}

	b.WriteString("\n")
	b.WriteString(result.Outcome.Output)

	if !strings.HasSuffix(result.Outcome.Output, "\n") {
		b.WriteString("\n")
	}

	if withDiff && result.Status() == m.StatusOutputMismatch {
		b.WriteString(unifiedDiff(result.Expected, result.Actual))
	}

	return b.String()
}

func unifiedDiff(expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("diff unavailable: %v\n", err)
	}

	return diff
}

// passRate is the fraction of passed cases; an empty run counts as fully passed.
func passRate(results []m.PipelineResult) float64 {
	if len(results) == 0 {
		return 1.0
	}

	passed := 0

	for _, result := range results {
		if result.Verdict == m.Passed {
			passed++
		}
	}

	return float64(passed) / float64(len(results))
}
