// Package controller provides output adapters for displaying harness results.
package controller

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeRun
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode    StartMode
	verbose bool
	diff    bool
}

// WithListMode sets the UI to registry listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithRunMode sets the UI to case execution mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithViewMode sets the UI to saved report viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// WithVerbose prints stage and captured output for every failed case.
func WithVerbose(verbose bool) StartOption {
	return func(c *StartConfig) {
		c.verbose = verbose
	}
}

// WithDiff adds a unified diff to output mismatch details.
func WithDiff(diff bool) StartOption {
	return func(c *StartConfig) {
		c.diff = diff
	}
}

// UI defines the interface for displaying harness progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayCases(ctx context.Context, cases []m.TestCase) error
	DisplayRunInfo(ctx context.Context, toolchain m.Toolchain, total int)
	DisplayStartingCase(ctx context.Context, tc m.TestCase, index int, total int)
	DisplayCaseResult(ctx context.Context, result m.PipelineResult)
	DisplaySummary(ctx context.Context, results []m.PipelineResult, elapsed time.Duration)
	DisplayReport(ctx context.Context, report m.Report) error
}

// NewUI returns a TUI when output goes to a terminal and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
