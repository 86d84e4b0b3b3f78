package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"uscc.dev/pkg/asmcheck/internal/domain"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

var runDiffFlag bool
var runIsolateFlag bool
var runExecTimeoutFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [cases...]",
		Short: "Run the acceptance corpus",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Interrupting the run kills the in-flight tool through its context.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return workflow.Run(ctx, domain.RunArgs{
				Cases:   args,
				Reports: m.Path(viper.GetString(outputFlagName)),
				Verbose: viper.GetBool(verboseConfigKey),
				Diff:    viper.GetBool(diffConfigKey),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&runDiffFlag, diffFlagName, viper.GetBool(diffConfigKey), "show a unified diff for output mismatches (with --verbose)")
	bindFlagToConfig(cmd.Flags().Lookup(diffFlagName), diffConfigKey)

	cmd.Flags().BoolVar(&runIsolateFlag, isolateFlagName, viper.GetBool(isolateConfigKey), "build every case in a fresh temporary directory")
	bindFlagToConfig(cmd.Flags().Lookup(isolateFlagName), isolateConfigKey)

	cmd.Flags().StringVar(&runExecTimeoutFlag, execTimeoutFlagName, viper.GetString(execTimeoutConfigKey), "limit for each executed program, e.g. 10s (0 disables)")
	bindFlagToConfig(cmd.Flags().Lookup(execTimeoutFlagName), execTimeoutConfigKey)
}
