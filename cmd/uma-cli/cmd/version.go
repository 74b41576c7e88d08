package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"uma/internal/config"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "uma %s (language %s)\n", Version, config.LanguageVersion)
		},
	}
}
