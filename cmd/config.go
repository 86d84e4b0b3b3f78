package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "asmcheck"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName      = "output"
	compilerFlagName    = "compiler"
	assemblerFlagName   = "assembler"
	corpusFlagName      = "corpus"
	expectedFlagName    = "expected"
	verboseFlagName     = "verbose"
	diffFlagName        = "diff"
	isolateFlagName     = "isolate"
	execTimeoutFlagName = "exec-timeout"
	logFlagName         = "log"

	compilerConfigKey       = "toolchain.compiler"
	assemblerConfigKey      = "toolchain.assembler"
	emitFlagConfigKey       = "toolchain.emit_flag"
	assemblerFlagsConfigKey = "toolchain.assembler_flags"
	corpusDirConfigKey      = "corpus.dir"
	expectedDirConfigKey    = "corpus.expected"
	sourceExtConfigKey      = "corpus.source_ext"
	casesConfigKey          = "corpus.cases"
	isolateConfigKey        = "run.isolate"
	execTimeoutConfigKey    = "run.exec_timeout"
	verboseConfigKey        = "report.verbose"
	diffConfigKey           = "report.diff"

	defaultCompiler    = "../bin/uscc"
	defaultCorpusDir   = "."
	defaultExpectedDir = "expected"
	defaultReportsDir  = ""
	defaultExecTimeout = "0s"

	envPrefix = "ASMCHECK"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".asmcheck.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var (
	globalLogger *slog.Logger
	// configErr holds the error from loading asmcheck.yaml at startup.
	configErr error
)

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)

	viper.SetDefault(compilerConfigKey, defaultCompiler)
	viper.SetDefault(assemblerConfigKey, m.DefaultAssembler)
	viper.SetDefault(emitFlagConfigKey, m.DefaultEmitFlag)
	viper.SetDefault(assemblerFlagsConfigKey, m.DefaultAssemblerFlags())

	viper.SetDefault(corpusDirConfigKey, defaultCorpusDir)
	viper.SetDefault(expectedDirConfigKey, defaultExpectedDir)
	viper.SetDefault(sourceExtConfigKey, m.DefaultSourceExt)
	viper.SetDefault(casesConfigKey, []string{})

	viper.SetDefault(isolateConfigKey, false)
	viper.SetDefault(execTimeoutConfigKey, defaultExecTimeout)
	viper.SetDefault(verboseConfigKey, false)
	viper.SetDefault(diffConfigKey, false)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	configErr = readConfig()
}

// readConfig loads asmcheck.yaml when present. A missing file is not an
// error; a file that exists but cannot be read or parsed is.
func readConfig() error {
	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("failed to read %s: %w", viper.ConfigFileUsed(), err)
}

// toolchainFromConfig assembles the toolchain from flags, env and config.
func toolchainFromConfig() m.Toolchain {
	return m.Toolchain{
		Compiler:       m.Path(viper.GetString(compilerConfigKey)),
		Assembler:      m.Path(viper.GetString(assemblerConfigKey)),
		EmitFlag:       viper.GetString(emitFlagConfigKey),
		AssemblerFlags: viper.GetStringSlice(assemblerFlagsConfigKey),
		SourceExt:      viper.GetString(sourceExtConfigKey),
	}
}

// execTimeoutFromConfig accepts Go durations ("30s") as well as plain
// seconds. Empty or zero disables the limit.
func execTimeoutFromConfig() (time.Duration, error) {
	raw := strings.TrimSpace(viper.GetString(execTimeoutConfigKey))
	if raw == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		n, atoiErr := strconv.Atoi(raw)
		if atoiErr != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", execTimeoutConfigKey, raw, err)
		}

		d = time.Duration(n) * time.Second
	}

	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", execTimeoutConfigKey, raw)
	}

	return d, nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
