// Package domain contains the acceptance harness: case registry, per-case
// pipeline, output comparison and result reporting.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"uscc.dev/pkg/asmcheck/internal/adapter"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

// mtimeSlack absorbs filesystems that store modification times at one
// second resolution.
const mtimeSlack = time.Second

// PipelineOptions tunes how cases are executed.
type PipelineOptions struct {
	// Isolate runs every case in a fresh temporary work directory instead of
	// the directory holding its source file.
	Isolate bool
	// ExecTimeout bounds the Execute stage. Zero means no limit.
	ExecTimeout time.Duration
}

// Pipeline drives one case through Compile, Assemble, Execute and Compare.
type Pipeline interface {
	// Setup checks the harness precondition that the compiler under test
	// exists. It returns an error wrapping ErrToolMissing otherwise.
	Setup(ctx context.Context) error
	// Run executes the stages for tc in order, stopping at the first failure.
	Run(ctx context.Context, tc m.TestCase) m.PipelineResult
	// Toolchain returns the toolchain the pipeline invokes.
	Toolchain() m.Toolchain
}

type pipeline struct {
	fsAdapter   adapter.CorpusFSAdapter
	toolAdapter adapter.ToolRunnerAdapter
	comparator  Comparator
	toolchain   m.Toolchain
	options     PipelineOptions
}

// NewPipeline constructs a Pipeline invoking the given toolchain through the
// provided adapters.
func NewPipeline(
	fsAdapter adapter.CorpusFSAdapter,
	toolAdapter adapter.ToolRunnerAdapter,
	comparator Comparator,
	toolchain m.Toolchain,
	options PipelineOptions,
) Pipeline {
	return &pipeline{
		fsAdapter:   fsAdapter,
		toolAdapter: toolAdapter,
		comparator:  comparator,
		toolchain:   withToolchainDefaults(toolchain),
		options:     options,
	}
}

func withToolchainDefaults(tc m.Toolchain) m.Toolchain {
	if tc.Assembler == "" {
		tc.Assembler = m.DefaultAssembler
	}

	if tc.EmitFlag == "" {
		tc.EmitFlag = m.DefaultEmitFlag
	}

	if tc.AssemblerFlags == nil {
		tc.AssemblerFlags = m.DefaultAssemblerFlags()
	}

	if tc.SourceExt == "" {
		tc.SourceExt = m.DefaultSourceExt
	}

	if tc.AsmExt == "" {
		tc.AsmExt = m.DefaultAsmExt
	}

	if tc.ExeExt == "" {
		tc.ExeExt = m.DefaultExeExt
	}

	return tc
}

func (p *pipeline) Toolchain() m.Toolchain {
	return p.toolchain
}

func (p *pipeline) Setup(ctx context.Context) error {
	if p.toolchain.Compiler == "" {
		return fmt.Errorf("%w: no compiler path configured", ErrToolMissing)
	}

	// The compiler is always a file path, bare names included, so the file
	// checked here is the file invoked from every case work dir.
	compiler, err := p.fsAdapter.AbsPath(ctx, p.toolchain.Compiler)
	if err != nil {
		slog.Error("Failed to resolve compiler path", "path", p.toolchain.Compiler, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrToolMissing, p.toolchain.Compiler, err)
	}

	info, err := p.fsAdapter.FileInfo(ctx, compiler)
	if err != nil {
		slog.Error("Compiler under test not found", "path", compiler, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrToolMissing, compiler, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrToolMissing, compiler)
	}

	p.toolchain.Compiler = compiler

	assembler, err := p.resolveToolPath(ctx, p.toolchain.Assembler)
	if err != nil {
		return err
	}

	p.toolchain.Assembler = assembler

	slog.Info("toolchain ready", "compiler", p.toolchain.Compiler, "assembler", p.toolchain.Assembler)

	return nil
}

// resolveToolPath makes an assembler path containing a separator absolute.
// Bare names are left for PATH lookup.
func (p *pipeline) resolveToolPath(ctx context.Context, tool m.Path) (m.Path, error) {
	if !strings.ContainsRune(string(tool), os.PathSeparator) || filepath.IsAbs(string(tool)) {
		return tool, nil
	}

	abs, err := p.fsAdapter.AbsPath(ctx, tool)
	if err != nil {
		slog.Error("Failed to resolve tool path", "path", tool, "error", err)
		return "", fmt.Errorf("failed to resolve tool path %s: %w", tool, err)
	}

	return abs, nil
}

// caseArtifacts holds the deterministic file names derived from a source file.
type caseArtifacts struct {
	workDir string
	source  string
	asm     string
	exe     string
}

func (p *pipeline) Run(ctx context.Context, tc m.TestCase) m.PipelineResult {
	slog.Info("running case", "case", tc.Name, "source", tc.Source)

	artifacts, err := p.prepareWorkDir(ctx, tc)
	if err != nil {
		return p.failed(tc, m.StageOutcome{Stage: m.StageCompile, ExitCode: -1, Output: err.Error()})
	}

	compileStarted := time.Now()

	outcome := p.compile(ctx, artifacts)
	if !outcome.Success {
		return p.failed(tc, outcome)
	}

	if outcome, ok := p.requireArtifact(ctx, artifacts, artifacts.asm, m.StageAssemble, compileStarted); !ok {
		return p.failed(tc, outcome)
	}

	assembleStarted := time.Now()

	outcome = p.assemble(ctx, artifacts)
	if !outcome.Success {
		return p.failed(tc, outcome)
	}

	if outcome, ok := p.requireArtifact(ctx, artifacts, artifacts.exe, m.StageExecute, assembleStarted); !ok {
		return p.failed(tc, outcome)
	}

	outcome = p.execute(ctx, artifacts)
	if !outcome.Success {
		return p.failed(tc, outcome)
	}

	return p.compare(ctx, tc, outcome.Output)
}

func (p *pipeline) prepareWorkDir(ctx context.Context, tc m.TestCase) (caseArtifacts, error) {
	sourceName := filepath.Base(string(tc.Source))
	base := strings.TrimSuffix(sourceName, filepath.Ext(sourceName))

	artifacts := caseArtifacts{
		workDir: filepath.Dir(string(tc.Source)),
		source:  sourceName,
		asm:     base + p.toolchain.AsmExt,
		exe:     base + p.toolchain.ExeExt,
	}

	if !p.options.Isolate {
		return artifacts, nil
	}

	tmpDir, err := p.fsAdapter.CreateTempDir(ctx, "asmcheck-"+tc.Name+"-*")
	if err != nil {
		slog.Error("Failed to create isolated work dir", "case", tc.Name, "error", err)
		return artifacts, fmt.Errorf("failed to create isolated work dir: %w", err)
	}

	dst := p.fsAdapter.JoinPath(ctx, string(tmpDir), sourceName)
	if err := p.fsAdapter.CopyFile(ctx, tc.Source, dst); err != nil {
		slog.Error("Failed to copy source into work dir", "case", tc.Name, "dst", dst, "error", err)
		return artifacts, fmt.Errorf("failed to copy source into work dir: %w", err)
	}

	slog.Debug("isolated work dir", "case", tc.Name, "dir", tmpDir)

	artifacts.workDir = string(tmpDir)

	return artifacts, nil
}

func (p *pipeline) compile(ctx context.Context, artifacts caseArtifacts) m.StageOutcome {
	return p.invoke(ctx, m.StageCompile, artifacts.workDir, string(p.toolchain.Compiler),
		p.toolchain.EmitFlag, artifacts.source)
}

func (p *pipeline) assemble(ctx context.Context, artifacts caseArtifacts) m.StageOutcome {
	args := make([]string, 0, len(p.toolchain.AssemblerFlags)+3)
	args = append(args, p.toolchain.AssemblerFlags...)
	args = append(args, artifacts.asm, "-o", artifacts.exe)

	return p.invoke(ctx, m.StageAssemble, artifacts.workDir, string(p.toolchain.Assembler), args...)
}

func (p *pipeline) execute(ctx context.Context, artifacts caseArtifacts) m.StageOutcome {
	if p.options.ExecTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.options.ExecTimeout)
		defer cancel()
	}

	return p.invoke(ctx, m.StageExecute, artifacts.workDir, "./"+artifacts.exe)
}

func (p *pipeline) invoke(ctx context.Context, stage m.Stage, workDir, name string, args ...string) m.StageOutcome {
	result, err := p.toolAdapter.Run(ctx, workDir, name, args...)
	if err != nil {
		return m.StageOutcome{Stage: stage, ExitCode: -1, Output: err.Error()}
	}

	outcome := m.StageOutcome{
		Stage:    stage,
		Success:  result.Succeeded(),
		ExitCode: result.ExitCode,
		Output:   result.Output,
		TimedOut: result.TimedOut,
		Duration: result.Duration,
	}

	if !outcome.Success {
		slog.Warn("stage failed", "stage", stage, "tool", name, "exitCode", result.ExitCode,
			"signal", result.Signal, "timedOut", result.TimedOut)
	}

	return outcome
}

// requireArtifact checks that the file consumed by stage exists and was
// written by the producing stage that started at producedAfter.
func (p *pipeline) requireArtifact(
	ctx context.Context,
	artifacts caseArtifacts,
	name string,
	stage m.Stage,
	producedAfter time.Time,
) (m.StageOutcome, bool) {
	path := p.fsAdapter.JoinPath(ctx, artifacts.workDir, name)

	info, err := p.fsAdapter.FileInfo(ctx, path)
	problem := "missing artifact"

	switch {
	case err != nil:
	case info.IsDir():
		err = errors.New("is a directory")
	case info.ModTime().Before(producedAfter.Add(-mtimeSlack)):
		problem = "stale artifact"
		err = fmt.Errorf("last modified %s before the producing stage ran",
			producedAfter.Sub(info.ModTime()).Round(time.Second))
	default:
		return m.StageOutcome{}, true
	}

	slog.Warn(problem, "stage", stage, "path", path, "error", err)

	return m.StageOutcome{
		Stage:    stage,
		ExitCode: -1,
		Output:   fmt.Sprintf("%s %s: %v\n", problem, path, err),
	}, false
}

func (p *pipeline) compare(ctx context.Context, tc m.TestCase, actual string) m.PipelineResult {
	golden, err := p.fsAdapter.ReadFile(ctx, tc.Golden)
	if err != nil {
		slog.Error("Failed to read golden file", "case", tc.Name, "path", tc.Golden, "error", err)

		return p.failed(tc, m.StageOutcome{
			Stage:    m.StageCompare,
			ExitCode: -1,
			Output:   fmt.Sprintf("failed to read golden file %s: %v\n", tc.Golden, err),
		})
	}

	expected := string(golden)
	match, diagnostic := p.comparator.Compare(expected, actual)

	result := m.PipelineResult{
		Case:     tc,
		Outcome:  m.StageOutcome{Stage: m.StageCompare, Success: match, Output: diagnostic},
		Verdict:  m.Failed,
		Expected: expected,
		Actual:   actual,
	}

	if match {
		result.Verdict = m.Passed
		slog.Info("case passed", "case", tc.Name)
	} else {
		slog.Info("case failed", "case", tc.Name, "stage", m.StageCompare)
	}

	return result
}

func (p *pipeline) failed(tc m.TestCase, outcome m.StageOutcome) m.PipelineResult {
	outcome.Success = false
	slog.Info("case failed", "case", tc.Name, "stage", outcome.Stage)

	return m.PipelineResult{Case: tc, Outcome: outcome, Verdict: m.Failed}
}
