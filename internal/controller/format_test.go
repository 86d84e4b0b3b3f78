package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

func mismatchResult() m.PipelineResult {
	return m.PipelineResult{
		Case:     m.TestCase{Name: "emit03"},
		Outcome:  m.StageOutcome{Stage: m.StageCompare, Output: "output does not match golden file\n"},
		Verdict:  m.Failed,
		Expected: "1\n2\n3\n",
		Actual:   "1\n2\n4\n",
	}
}

func TestCaseLine(t *testing.T) {
	passed := m.PipelineResult{Case: m.TestCase{Name: "emit02"}, Outcome: m.StageOutcome{Stage: m.StageCompare, Success: true}, Verdict: m.Passed}
	assert.Equal(t, "emit02 ... Passed", caseLine(passed))

	compile := m.PipelineResult{Case: m.TestCase{Name: "opt04"}, Outcome: m.StageOutcome{Stage: m.StageCompile, ExitCode: 1}, Verdict: m.Failed}
	assert.Equal(t, "opt04 ... Failed (compile: compile failure)", caseLine(compile))

	assert.Equal(t, "emit03 ... Failed (compare: output mismatch)", caseLine(mismatchResult()))

	unreadable := m.PipelineResult{Case: m.TestCase{Name: "emit08"}, Outcome: m.StageOutcome{Stage: m.StageCompare, ExitCode: -1}, Verdict: m.Failed}
	assert.Equal(t, "emit08 ... Failed (compare: golden file unreadable)", caseLine(unreadable))
}

func TestCaseDetail(t *testing.T) {
	t.Run("exit status", func(t *testing.T) {
		result := m.PipelineResult{
			Case:    m.TestCase{Name: "opt04"},
			Outcome: m.StageOutcome{Stage: m.StageCompile, ExitCode: 1, Output: "opt04.usc:2: error"},
			Verdict: m.Failed,
		}

		assert.Equal(t, "=== opt04 failed at compile (exit status 1)\nopt04.usc:2: error\n", caseDetail(result, false))
	})

	t.Run("timeout", func(t *testing.T) {
		result := m.PipelineResult{
			Case:    m.TestCase{Name: "emit07"},
			Outcome: m.StageOutcome{Stage: m.StageExecute, ExitCode: -1, TimedOut: true},
			Verdict: m.Failed,
		}

		assert.Contains(t, caseDetail(result, false), "=== emit07 failed at execute (timed out)\n")
	})

	t.Run("mismatch without diff", func(t *testing.T) {
		detail := caseDetail(mismatchResult(), false)
		assert.Equal(t, "=== emit03 failed at compare\noutput does not match golden file\n", detail)
	})

	t.Run("mismatch with diff", func(t *testing.T) {
		detail := caseDetail(mismatchResult(), true)
		assert.Contains(t, detail, "--- expected\n+++ actual\n")
		assert.Contains(t, detail, "-3\n+4\n")
	})
}

func TestPassRate(t *testing.T) {
	assert.InDelta(t, 1.0, passRate(nil), 0.0001)

	results := []m.PipelineResult{
		{Verdict: m.Passed},
		{Verdict: m.Failed},
		{Verdict: m.Passed},
		{Verdict: m.Passed},
	}
	assert.InDelta(t, 0.75, passRate(results), 0.0001)
}
