package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"uma/internal/ast"
	"uma/internal/parser"
	"uma/token"
)

func newTokensCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s, err := openSession(opts, args[0], out)
			if err != nil {
				return err
			}

			result, err := parser.ParseSourceWithTokens(s.source)
			if result == nil {
				return s.fail(out, err)
			}

			for _, tok := range result.Tokens {
				if tok.Kind == token.EOF {
					continue
				}
				fmt.Fprintf(out, "%-6s %-12s %s\n", tok.Position, tok.Kind, tok.Text())
			}
			return nil
		},
	}
}

func newASTCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the parsed statements of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s, err := openSession(opts, args[0], out)
			if err != nil {
				return err
			}

			stmts, err := parser.ParseSource(s.source)
			if err != nil {
				return s.fail(out, err)
			}

			fmt.Fprint(out, ast.Format(stmts))
			return nil
		},
	}
}
