// Package model defines the data structures for the acceptance harness.
package model

// Path represents a file system path.
type Path string

// TestCase names one unit under test: a source file and its golden output.
type TestCase struct {
	Name   string
	Source Path
	Golden Path
}

// Toolchain holds the external tool locations and artifact naming conventions
// injected into the pipeline.
type Toolchain struct {
	Compiler       Path
	Assembler      Path
	EmitFlag       string
	AssemblerFlags []string
	SourceExt      string
	AsmExt         string
	ExeExt         string
}

// Default toolchain settings and artifact naming conventions.
const (
	DefaultAssembler = "gcc"
	DefaultEmitFlag  = "-s"
	DefaultSourceExt = ".usc"
	DefaultAsmExt    = ".s"
	DefaultExeExt    = ".out"
	GoldenExt        = ".output"
)

// DefaultAssemblerFlags returns the flags passed to the assembler when none
// are configured. Position-independent executables are disabled.
func DefaultAssemblerFlags() []string {
	return []string{"-no-pie"}
}
