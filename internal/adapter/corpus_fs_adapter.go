// Package adapter contains the filesystem and subprocess ports used by the harness.
package adapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	m "uscc.dev/pkg/asmcheck/internal/model"
)

// CorpusFSAdapter abstracts the filesystem operations the pipeline needs for
// reading golden files, checking artifacts and preparing work directories. It
// hides direct `os` access so the pipeline can be tested without touching disk.
type CorpusFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)
	// FileInfo returns metadata for a path so callers can check existence.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)
	// CreateTempDir creates a fresh directory for an isolated case run.
	CreateTempDir(ctx context.Context, pattern string) (m.Path, error)
	// CopyFile copies a single file, preserving its permissions.
	CopyFile(ctx context.Context, src, dst m.Path) error
	// AbsPath resolves path against the current working directory.
	AbsPath(ctx context.Context, path m.Path) (m.Path, error)
	// JoinPath joins path elements into a single path.
	JoinPath(ctx context.Context, elem ...string) m.Path
}

// LocalCorpusFSAdapter is the os-backed CorpusFSAdapter.
type LocalCorpusFSAdapter struct{}

// NewLocalCorpusFSAdapter constructs a LocalCorpusFSAdapter.
func NewLocalCorpusFSAdapter() *LocalCorpusFSAdapter {
	return &LocalCorpusFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalCorpusFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalCorpusFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// CreateTempDir creates a temporary directory under the system temp dir.
func (a *LocalCorpusFSAdapter) CreateTempDir(ctx context.Context, pattern string) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmpDir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return "", err
	}

	return m.Path(tmpDir), nil
}

// CopyFile copies src to dst, creating parent directories as needed.
func (a *LocalCorpusFSAdapter) CopyFile(ctx context.Context, src, dst m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(string(src))
	if err != nil {
		return err
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	// #nosec G304 - src is a registered corpus file, not user input
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is inside a harness-owned work directory
	destFile, err := os.Create(string(dst))
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return os.Chmod(string(dst), info.Mode())
}

// AbsPath returns an absolute representation of path.
func (a *LocalCorpusFSAdapter) AbsPath(ctx context.Context, path m.Path) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalCorpusFSAdapter) JoinPath(_ context.Context, elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
