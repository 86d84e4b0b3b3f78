package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"uscc.dev/pkg/asmcheck/internal/domain"
	m "uscc.dev/pkg/asmcheck/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the report of the last saved run",
		Long:  "View the report saved by 'asmcheck run --output DIR' from the same directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{
				Reports: m.Path(viper.GetString(outputFlagName)),
				Verbose: viper.GetBool(verboseConfigKey),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
