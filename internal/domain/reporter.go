package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"uscc.dev/pkg/asmcheck/internal/controller"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

// Reporter accumulates one result per case in enumeration order and decides
// the overall status of the run.
type Reporter interface {
	// Record stores result and displays its verdict line.
	Record(ctx context.Context, result m.PipelineResult)
	// Results returns the recorded results in order.
	Results() []m.PipelineResult
	// AllPassed is true until a failed result is recorded.
	AllPassed() bool
	// Counts returns the number of passed and failed cases.
	Counts() (passed int, failed int)
	// Summarize displays the summary of everything recorded so far.
	Summarize(ctx context.Context, elapsed time.Duration)
	// Err returns an error wrapping ErrCasesFailed if any case failed.
	Err() error
}

type resultReporter struct {
	ui        controller.UI
	results   []m.PipelineResult
	allPassed bool
}

// NewReporter creates a Reporter that displays results through ui.
func NewReporter(ui controller.UI) Reporter {
	return &resultReporter{ui: ui, allPassed: true}
}

func (r *resultReporter) Record(ctx context.Context, result m.PipelineResult) {
	r.results = append(r.results, result)

	if result.Verdict != m.Passed {
		r.allPassed = false
	}

	r.ui.DisplayCaseResult(ctx, result)
}

func (r *resultReporter) Results() []m.PipelineResult {
	results := make([]m.PipelineResult, len(r.results))
	copy(results, r.results)

	return results
}

func (r *resultReporter) AllPassed() bool {
	return r.allPassed
}

func (r *resultReporter) Counts() (int, int) {
	passed := 0

	for _, result := range r.results {
		if result.Verdict == m.Passed {
			passed++
		}
	}

	return passed, len(r.results) - passed
}

func (r *resultReporter) Summarize(ctx context.Context, elapsed time.Duration) {
	r.ui.DisplaySummary(ctx, r.Results(), elapsed)
}

func (r *resultReporter) Err() error {
	if r.allPassed {
		return nil
	}

	passed, failed := r.Counts()
	slog.Debug("run has failures", "passed", passed, "failed", failed)

	return fmt.Errorf("%w: %d of %d", ErrCasesFailed, failed, passed+failed)
}
