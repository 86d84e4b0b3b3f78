package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait blocks on inherited pipes after the process
// itself has been killed.
const waitDelay = 2 * time.Second

// ToolResult is the captured result of one external tool invocation. Output
// holds stdout and stderr interleaved in the order they were written; Signal
// is set when the process was terminated by a signal.
type ToolResult struct {
	Output   string
	ExitCode int
	Signal   string
	TimedOut bool
	Duration time.Duration
}

// Succeeded reports whether the tool exited normally with status zero.
func (r ToolResult) Succeeded() bool {
	return r.ExitCode == 0 && r.Signal == "" && !r.TimedOut
}

// ToolRunnerAdapter abstracts invoking the external toolchain (compiler,
// assembler, compiled program) so the pipeline can be tested with fakes.
type ToolRunnerAdapter interface {
	// Run executes name with args in workDir and blocks until it exits.
	// A nonzero exit is reported through ToolResult, not as an error; the
	// error is reserved for tools that could not be started at all.
	Run(ctx context.Context, workDir string, name string, args ...string) (ToolResult, error)
}

// LocalToolRunnerAdapter provides a concrete implementation using os/exec.
type LocalToolRunnerAdapter struct{}

// NewLocalToolRunnerAdapter constructs a LocalToolRunnerAdapter.
func NewLocalToolRunnerAdapter() *LocalToolRunnerAdapter {
	return &LocalToolRunnerAdapter{}
}

// Run executes the tool and captures its combined output.
func (a *LocalToolRunnerAdapter) Run(ctx context.Context, workDir string, name string, args ...string) (ToolResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workDir
	cmd.WaitDelay = waitDelay
	configureProcessGroup(cmd)

	// A single buffer for both streams keeps the original interleaving.
	var combined bytes.Buffer

	cmd.Stdout = &combined
	cmd.Stderr = &combined

	slog.Debug("running tool", "dir", workDir, "name", name, "args", args)

	start := time.Now()
	err := cmd.Run()
	result := ToolResult{
		Output:   combined.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		result.TimedOut = errors.Is(ctxErr, context.DeadlineExceeded)
		slog.Warn("tool interrupted", "name", name, "timedOut", result.TimedOut, "error", ctxErr)

		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		result.Signal = signalOf(exitErr)
		slog.Debug("tool exited with failure", "name", name, "exitCode", result.ExitCode, "signal", result.Signal)

		return result, nil
	}

	slog.Error("failed to start tool", "name", name, "dir", workDir, "error", err)

	return result, fmt.Errorf("failed to start %s: %w", name, err)
}
