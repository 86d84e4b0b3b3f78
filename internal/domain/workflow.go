package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"uscc.dev/pkg/asmcheck/internal/adapter"
	"uscc.dev/pkg/asmcheck/internal/controller"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

// RunArgs contains the arguments for running the harness.
type RunArgs struct {
	// Cases restricts the run to the named cases; empty runs all of them.
	Cases []string
	// Reports is the directory the run report is saved to; empty disables saving.
	Reports m.Path
	Verbose bool
	Diff    bool
}

// ListArgs contains the arguments for listing registered cases.
type ListArgs struct {
	Cases []string
}

// ViewArgs contains the arguments for viewing a saved report.
type ViewArgs struct {
	Reports m.Path
	Verbose bool
}

// Workflow is the harness entry point used by the CLI commands.
type Workflow interface {
	// Run checks the toolchain precondition, then runs every selected case
	// in registry order. It returns an error wrapping ErrToolMissing when
	// setup fails and ErrCasesFailed when any case fails.
	Run(ctx context.Context, args RunArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ReportStore
	controller.UI

	registry *Registry
	pipeline Pipeline
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	registry *Registry,
	pipeline Pipeline,
	reportStore adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		ReportStore: reportStore,
		UI:          ui,
		registry:    registry,
		pipeline:    pipeline,
	}
}

func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	cases, err := w.registry.Select(args.Cases)
	if err != nil {
		slog.Error("Failed to select cases", "cases", args.Cases, "error", err)
		return err
	}

	if err := w.pipeline.Setup(ctx); err != nil {
		slog.Error("Harness setup failed", "error", err)
		return fmt.Errorf("setup: %w", err)
	}

	if err := w.Start(ctx, controller.WithRunMode(), controller.WithVerbose(args.Verbose), controller.WithDiff(args.Diff)); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return fmt.Errorf("start ui: %w", err)
	}

	runID := uuid.NewString()
	started := time.Now()
	reporter := NewReporter(w.UI)

	slog.Info("run started", "runID", runID, "cases", len(cases))
	w.DisplayRunInfo(ctx, w.pipeline.Toolchain(), len(cases))

	for i, tc := range cases {
		if err := ctx.Err(); err != nil {
			w.Close(ctx)
			slog.Warn("run interrupted", "runID", runID, "completed", i, "error", err)

			return fmt.Errorf("run interrupted after %d of %d case(s): %w", i, len(cases), err)
		}

		w.DisplayStartingCase(ctx, tc, i, len(cases))
		reporter.Record(ctx, w.pipeline.Run(ctx, tc))
	}

	elapsed := time.Since(started)

	w.Close(ctx)
	reporter.Summarize(ctx, elapsed)

	passed, failed := reporter.Counts()
	slog.Info("run finished", "runID", runID, "passed", passed, "failed", failed, "elapsed", elapsed)

	if args.Reports != "" {
		report := buildReport(runID, started, elapsed, reporter.Results())
		if err := w.SaveReport(ctx, args.Reports, report); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
	}

	return reporter.Err()
}

func buildReport(runID string, started time.Time, elapsed time.Duration, results []m.PipelineResult) m.Report {
	report := m.Report{
		RunID:     runID,
		StartedAt: started.UTC(),
		Duration:  elapsed,
		Results:   make([]m.CaseReport, 0, len(results)),
	}

	for _, result := range results {
		report.Results = append(report.Results, m.NewCaseReport(result))
	}

	return report
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	cases, err := w.registry.Select(args.Cases)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	if err := w.DisplayCases(ctx, cases); err != nil {
		slog.Error("Failed to display cases", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if args.Reports == "" {
		return errors.New("no reports directory configured, pass --output")
	}

	report, err := w.LoadReport(ctx, args.Reports)
	if err != nil {
		slog.Error("Failed to load report", "dir", args.Reports, "error", err)
		return fmt.Errorf("load report: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode(), controller.WithVerbose(args.Verbose)); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	if err := w.DisplayReport(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}
