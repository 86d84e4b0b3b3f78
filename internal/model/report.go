package model

import "time"

// Report captures one full harness run for later viewing.
type Report struct {
	RunID     string        `yaml:"run_id"`
	StartedAt time.Time     `yaml:"started_at"`
	Duration  time.Duration `yaml:"duration"`
	Results   []CaseReport  `yaml:"cases"`
}

// CaseReport is the persisted form of a PipelineResult.
type CaseReport struct {
	Name     string `yaml:"name"`
	Verdict  string `yaml:"verdict"`
	Stage    string `yaml:"stage"`
	Status   string `yaml:"status"`
	ExitCode int    `yaml:"exit_code"`
	Output   string `yaml:"output,omitempty"`
}

// NewCaseReport converts a PipelineResult into its persisted form.
func NewCaseReport(result PipelineResult) CaseReport {
	return CaseReport{
		Name:     result.Case.Name,
		Verdict:  result.Verdict.String(),
		Stage:    result.Outcome.Stage.String(),
		Status:   result.Status().String(),
		ExitCode: result.Outcome.ExitCode,
		Output:   result.Outcome.Output,
	}
}
