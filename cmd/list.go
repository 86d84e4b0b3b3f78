package cmd

import (
	"github.com/spf13/cobra"

	"uscc.dev/pkg/asmcheck/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [cases...]",
		Short: "List the registered cases",
		Long:  "List the registered cases with their source and golden file paths, in run order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{Cases: args})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
