// Package cmd provides the root command and CLI setup for asmcheck.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"uscc.dev/pkg/asmcheck/internal/adapter"
	"uscc.dev/pkg/asmcheck/internal/controller"
	"uscc.dev/pkg/asmcheck/internal/domain"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

// Exit codes returned by the asmcheck binary.
const (
	exitOK          = 0
	exitCasesFailed = 1
	exitSetupFailed = 2
)

var fsAdapter adapter.CorpusFSAdapter
var toolAdapter adapter.ToolRunnerAdapter
var reportStore adapter.ReportStore

// workflow is built on first use from the resolved configuration; tests
// replace it with a mock before executing a command.
var workflow domain.Workflow

var (
	reportsOutputDirFlag string
	compilerFlag         string
	assemblerFlag        string
	corpusDirFlag        string
	expectedDirFlag      string
	verboseFlag          bool
	logFileFlag          string
)

func init() {
	fsAdapter = adapter.NewLocalCorpusFSAdapter()
	toolAdapter = adapter.NewLocalToolRunnerAdapter()
	reportStore = adapter.NewReportStore()
}

const rootLongDescription = `asmcheck is an acceptance harness for the uscc compiler. Every case of the
corpus is compiled to assembly, assembled and linked with gcc, executed, and
its combined stdout/stderr compared byte for byte with a golden file.

Settings are read from asmcheck.yaml, ASMCHECK_* environment variables and
flags, in increasing order of precedence.`

const runLongDescription = `Run the named cases (default: the whole corpus) in registry order.

Exit status is 0 when every case passes, 1 when any case fails and 2 when
the compiler under test cannot be found.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "asmcheck",
		Short:         "Compiler acceptance test harness",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			if configErr != nil {
				slog.Error("Invalid configuration file", "error", configErr)
				return configErr
			}

			if workflow != nil {
				return nil
			}

			built, err := buildWorkflow(cmd)
			if err != nil {
				return err
			}

			workflow = built

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"directory to save the run report to (view reads it from there)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVar(&compilerFlag, compilerFlagName, viper.GetString(compilerConfigKey), "path to the compiler under test")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(compilerFlagName), compilerConfigKey)

	cmd.PersistentFlags().StringVar(&assemblerFlag, assemblerFlagName, viper.GetString(assemblerConfigKey), "assembler/linker used to build executables")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(assemblerFlagName), assemblerConfigKey)

	cmd.PersistentFlags().StringVar(&corpusDirFlag, corpusFlagName, viper.GetString(corpusDirConfigKey), "directory holding the case sources")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(corpusFlagName), corpusDirConfigKey)

	cmd.PersistentFlags().StringVar(&expectedDirFlag, expectedFlagName, viper.GetString(expectedDirConfigKey), "golden output directory, relative to the corpus")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(expectedFlagName), expectedDirConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(verboseConfigKey), "print stage and captured output of failed cases")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), verboseConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// buildWorkflow wires the registry, pipeline and UI for the configured corpus.
func buildWorkflow(cmd *cobra.Command) (domain.Workflow, error) {
	toolchain := toolchainFromConfig()

	names := viper.GetStringSlice(casesConfigKey)
	if len(names) == 0 {
		names = domain.DefaultCaseNames()
	}

	registry, err := domain.NewRegistry(domain.BuildCases(names, domain.CorpusLayout{
		CorpusDir:   m.Path(viper.GetString(corpusDirConfigKey)),
		ExpectedDir: m.Path(viper.GetString(expectedDirConfigKey)),
		SourceExt:   toolchain.SourceExt,
	})...)
	if err != nil {
		return nil, fmt.Errorf("invalid corpus configuration: %w", err)
	}

	execTimeout, err := execTimeoutFromConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid run configuration: %w", err)
	}

	pipeline := domain.NewPipeline(
		fsAdapter,
		toolAdapter,
		domain.NewComparator(),
		toolchain,
		domain.PipelineOptions{
			Isolate:     viper.GetBool(isolateConfigKey),
			ExecTimeout: execTimeout,
		},
	)

	ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))

	return domain.NewWorkflow(registry, pipeline, reportStore, ui), nil
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrToolMissing):
		return exitSetupFailed
	default:
		return exitCasesFailed
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(exitCode(err))
	}
}
