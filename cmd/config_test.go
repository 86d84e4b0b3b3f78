package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "asmcheck", configBaseName)
	assert.Equal(t, "asmcheck.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "toolchain.compiler", compilerConfigKey)
	assert.Equal(t, "corpus.cases", casesConfigKey)
	assert.Equal(t, "run.exec_timeout", execTimeoutConfigKey)
	assert.Equal(t, "../bin/uscc", defaultCompiler)
	assert.Equal(t, "ASMCHECK", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestToolchainFromConfig_Defaults(t *testing.T) {
	toolchain := toolchainFromConfig()

	assert.Equal(t, m.Path("../bin/uscc"), toolchain.Compiler)
	assert.Equal(t, m.Path("gcc"), toolchain.Assembler)
	assert.Equal(t, "-s", toolchain.EmitFlag)
	assert.Equal(t, []string{"-no-pie"}, toolchain.AssemblerFlags)
	assert.Equal(t, ".usc", toolchain.SourceExt)
}

func TestToolchainFromConfig_Env(t *testing.T) {
	t.Setenv("ASMCHECK_TOOLCHAIN_COMPILER", "/usr/local/bin/uscc")
	t.Setenv("ASMCHECK_TOOLCHAIN_ASSEMBLER", "clang")

	toolchain := toolchainFromConfig()
	assert.Equal(t, m.Path("/usr/local/bin/uscc"), toolchain.Compiler)
	assert.Equal(t, m.Path("clang"), toolchain.Assembler)
}

func TestExecTimeoutFromConfig(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"0s", 0, false},
		{"0", 0, false},
		{"10s", 10 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"5", 5 * time.Second, false},
		{"-3s", 0, true},
		{"-3", 0, true},
		{"soon", 0, true},
		{"10 s", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("ASMCHECK_RUN_EXEC_TIMEOUT", tt.value)

			got, err := execTimeoutFromConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "run.exec_timeout")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Chdir(t.TempDir())

		require.NoError(t, readConfig())
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("toolchain:\n  compiler: [unterminated\n"), 0o600))
		t.Chdir(dir)

		err := readConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), configFileName)
	})
}

func TestParseSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseSlogLevel("DEBUG", slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, parseSlogLevel("warning", slog.LevelInfo))
	assert.Equal(t, slog.LevelError, parseSlogLevel(" error ", slog.LevelInfo))
	assert.Equal(t, slog.Level(-4), parseSlogLevel("-4", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, parseSlogLevel("", slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, parseSlogLevel("loud", slog.LevelWarn))
}

func TestConfigureLogger_WritesToFile(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logPath := filepath.Join(t.TempDir(), "asmcheck.log")
	configureLogger(logPath, true)

	slog.Debug("toolchain ready", "compiler", "../bin/uscc")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "toolchain ready")
	assert.Contains(t, string(data), "compiler=../bin/uscc")
	assert.Same(t, globalLogger, slog.Default())
}
