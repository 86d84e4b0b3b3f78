package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineResult_Status(t *testing.T) {
	tests := []struct {
		name   string
		result PipelineResult
		want   Status
	}{
		{"passed", PipelineResult{Outcome: StageOutcome{Stage: StageCompare, Success: true}, Verdict: Passed}, StatusPassed},
		{"compile", PipelineResult{Outcome: StageOutcome{Stage: StageCompile}}, StatusCompileFailure},
		{"assemble", PipelineResult{Outcome: StageOutcome{Stage: StageAssemble}}, StatusAssembleFailure},
		{"execute", PipelineResult{Outcome: StageOutcome{Stage: StageExecute, ExitCode: 3}}, StatusExecutionFailure},
		{"timeout", PipelineResult{Outcome: StageOutcome{Stage: StageExecute, TimedOut: true}}, StatusTimeout},
		{"mismatch", PipelineResult{Outcome: StageOutcome{Stage: StageCompare}}, StatusOutputMismatch},
		{"golden unreadable", PipelineResult{Outcome: StageOutcome{Stage: StageCompare, ExitCode: -1}}, StatusGoldenUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Status())
		})
	}
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "compile", StageCompile.String())
	assert.Equal(t, "compare", StageCompare.String())
	assert.Equal(t, "unknown", Stage(42).String())

	assert.Equal(t, "Passed", Passed.String())
	assert.Equal(t, "Failed", Failed.String())

	assert.Equal(t, "execution failure", StatusExecutionFailure.String())
	assert.Equal(t, "golden file unreadable", StatusGoldenUnreadable.String())
	assert.Equal(t, "unknown", Status(42).String())
}

func TestNewCaseReport(t *testing.T) {
	report := NewCaseReport(PipelineResult{
		Case:    TestCase{Name: "opt04"},
		Outcome: StageOutcome{Stage: StageCompile, ExitCode: 1, Output: "error\n"},
		Verdict: Failed,
	})

	assert.Equal(t, CaseReport{
		Name:     "opt04",
		Verdict:  "Failed",
		Stage:    "compile",
		Status:   "compile failure",
		ExitCode: 1,
		Output:   "error\n",
	}, report)
}
