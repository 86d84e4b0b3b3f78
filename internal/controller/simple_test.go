package controller

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	return NewSimpleUI(cmd), &out
}

func compileFailure() m.PipelineResult {
	return m.PipelineResult{
		Case:    m.TestCase{Name: "opt04", Source: "opt04.usc"},
		Outcome: m.StageOutcome{Stage: m.StageCompile, ExitCode: 1, Output: "undeclared identifier\n"},
		Verdict: m.Failed,
	}
}

func TestSimpleUI_DisplayCaseResult(t *testing.T) {
	ctx := context.Background()

	t.Run("quiet", func(t *testing.T) {
		ui, out := newTestSimpleUI()
		require.NoError(t, ui.Start(ctx, WithRunMode()))

		ui.DisplayStartingCase(ctx, m.TestCase{Name: "opt04", Source: "opt04.usc"}, 0, 1)
		ui.DisplayCaseResult(ctx, compileFailure())

		assert.Equal(t, "opt04 ... Failed (compile: compile failure)\n", out.String())
	})

	t.Run("verbose", func(t *testing.T) {
		ui, out := newTestSimpleUI()
		require.NoError(t, ui.Start(ctx, WithRunMode(), WithVerbose(true)))

		ui.DisplayStartingCase(ctx, m.TestCase{Name: "opt04", Source: "opt04.usc"}, 0, 1)
		ui.DisplayCaseResult(ctx, compileFailure())

		assert.Equal(t, "[1/1] opt04.usc\n"+
			"opt04 ... Failed (compile: compile failure)\n"+
			"=== opt04 failed at compile (exit status 1)\n"+
			"undeclared identifier\n", out.String())
	})

	t.Run("verbose does not detail passes", func(t *testing.T) {
		ui, out := newTestSimpleUI()
		require.NoError(t, ui.Start(ctx, WithVerbose(true)))

		ui.DisplayCaseResult(ctx, m.PipelineResult{Case: m.TestCase{Name: "emit02"}, Verdict: m.Passed})

		assert.Equal(t, "emit02 ... Passed\n", out.String())
	})
}

func TestSimpleUI_StartResetsOptions(t *testing.T) {
	ctx := context.Background()
	ui, out := newTestSimpleUI()

	require.NoError(t, ui.Start(ctx, WithVerbose(true)))
	require.NoError(t, ui.Start(ctx, WithRunMode()))

	ui.DisplayCaseResult(ctx, compileFailure())
	assert.NotContains(t, out.String(), "===")
}

func TestSimpleUI_DisplayRunInfo(t *testing.T) {
	ui, out := newTestSimpleUI()

	ui.DisplayRunInfo(context.Background(), m.Toolchain{Compiler: "../bin/uscc"}, 21)
	assert.Equal(t, "Running 21 case(s) with ../bin/uscc\n", out.String())
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	ui, out := newTestSimpleUI()

	results := []m.PipelineResult{
		{Case: m.TestCase{Name: "emit02"}, Outcome: m.StageOutcome{Stage: m.StageCompare, Success: true}, Verdict: m.Passed},
		compileFailure(),
	}

	ui.DisplaySummary(context.Background(), results, 1500*time.Millisecond)

	text := out.String()
	assert.Contains(t, text, "emit02")
	assert.Contains(t, text, "opt04")
	assert.Contains(t, text, "compile failure")
	assert.Contains(t, text, "Pass rate: 50.00% (1.5s)\n")
}

func TestSimpleUI_DisplayCases(t *testing.T) {
	ui, out := newTestSimpleUI()

	cases := []m.TestCase{
		{Name: "emit02", Source: "emit02.usc", Golden: "expected/emit02.output"},
		{Name: "opt04", Source: "opt04.usc", Golden: "expected/opt04.output"},
	}

	require.NoError(t, ui.DisplayCases(context.Background(), cases))

	text := out.String()
	assert.Contains(t, text, "emit02.usc")
	assert.Contains(t, text, "expected/opt04.output")
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	ctx := context.Background()
	ui, out := newTestSimpleUI()
	require.NoError(t, ui.Start(ctx, WithViewMode(), WithVerbose(true)))

	report := m.Report{
		RunID:     "6f1c",
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:  2 * time.Second,
		Results: []m.CaseReport{
			{Name: "emit02", Verdict: "Passed", Stage: "compare", Status: "passed"},
			{Name: "opt04", Verdict: "Failed", Stage: "compile", Status: "compile failure", ExitCode: 1, Output: "undeclared identifier\n"},
		},
	}

	require.NoError(t, ui.DisplayReport(ctx, report))

	text := out.String()
	assert.Contains(t, text, "Run 6f1c started 2026-01-02T03:04:05Z")
	assert.Contains(t, text, "took 2s")
	assert.Contains(t, text, "=== opt04 failed at compile\nundeclared identifier\n")
	assert.NotContains(t, text, "=== emit02")
}

func TestSimpleUI_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui, out := newTestSimpleUI()

	require.ErrorIs(t, ui.Start(ctx), context.Canceled)
	require.ErrorIs(t, ui.DisplayCases(ctx, nil), context.Canceled)
	ui.DisplayCaseResult(ctx, compileFailure())

	assert.Empty(t, out.String())
}
