package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"uma/internal/errors"
)

func newExplainCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "explain <code>",
		Short:   "Describe a diagnostic code",
		Example: "  uma explain E0110",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return explain(cmd, strings.ToUpper(args[0]))
		},
	}
}

func explain(cmd *cobra.Command, code string) error {
	description := errors.GetErrorDescription(code)
	category := errors.GetErrorCategory(code)
	if category == "Unknown" || description == "Unknown error code" {
		return fmt.Errorf("unknown diagnostic code %q", code)
	}

	level := "error"
	if errors.IsWarning(code) {
		level = "warning"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s[%s]: %s\n", level, code, description)
	fmt.Fprintf(out, "category: %s\n", category)
	return nil
}
