package model

import "time"

// Stage identifies one phase of the per-case pipeline.
type Stage int

const (
	// StageCompile invokes the compiler under test.
	StageCompile Stage = iota
	// StageAssemble invokes the assembler/linker.
	StageAssemble
	// StageExecute runs the produced executable.
	StageExecute
	// StageCompare checks captured output against the golden file.
	StageCompare
)

func (s Stage) String() string {
	switch s {
	case StageCompile:
		return "compile"
	case StageAssemble:
		return "assemble"
	case StageExecute:
		return "execute"
	case StageCompare:
		return "compare"
	default:
		return "unknown"
	}
}

// Verdict is the overall result of a case.
type Verdict int

const (
	// Failed indicates a stage failed or output mismatched.
	Failed Verdict = iota
	// Passed indicates all stages completed and output matched.
	Passed
)

func (v Verdict) String() string {
	if v == Passed {
		return "Passed"
	}

	return "Failed"
}

// Status classifies the final outcome of a case.
type Status int

const (
	// StatusPassed means every stage succeeded.
	StatusPassed Status = iota
	// StatusCompileFailure means the compiler exited nonzero.
	StatusCompileFailure
	// StatusAssembleFailure means the assembler exited nonzero or had no input.
	StatusAssembleFailure
	// StatusExecutionFailure means the program exited nonzero or terminated abnormally.
	StatusExecutionFailure
	// StatusOutputMismatch means captured output differs from the golden file.
	StatusOutputMismatch
	// StatusTimeout means the program exceeded the configured execution timeout.
	StatusTimeout
	// StatusGoldenUnreadable means the golden file could not be read, so no
	// comparison took place.
	StatusGoldenUnreadable
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusCompileFailure:
		return "compile failure"
	case StatusAssembleFailure:
		return "assemble failure"
	case StatusExecutionFailure:
		return "execution failure"
	case StatusOutputMismatch:
		return "output mismatch"
	case StatusTimeout:
		return "timeout"
	case StatusGoldenUnreadable:
		return "golden file unreadable"
	default:
		return "unknown"
	}
}

// StageOutcome records what happened in the last stage a case reached.
// Output is the combined stdout/stderr of the tool, or the mismatch detail
// for the compare stage. ExitCode is -1 when the stage could not run at all.
type StageOutcome struct {
	Stage    Stage
	Success  bool
	ExitCode int
	Output   string
	TimedOut bool
	Duration time.Duration
}

// PipelineResult is the outcome of running one case through the pipeline.
// Expected and Actual are only set when the compare stage was reached.
type PipelineResult struct {
	Case     TestCase
	Outcome  StageOutcome
	Verdict  Verdict
	Expected string
	Actual   string
}

// Status derives the error taxonomy entry from the final outcome.
func (r PipelineResult) Status() Status {
	if r.Verdict == Passed {
		return StatusPassed
	}

	switch r.Outcome.Stage {
	case StageCompile:
		return StatusCompileFailure
	case StageAssemble:
		return StatusAssembleFailure
	case StageExecute:
		if r.Outcome.TimedOut {
			return StatusTimeout
		}

		return StatusExecutionFailure
	default:
		if r.Outcome.ExitCode == -1 {
			return StatusGoldenUnreadable
		}

		return StatusOutputMismatch
	}
}
