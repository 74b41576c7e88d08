package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"uma/internal/codegen"
	"uma/internal/parser"
)

func newBuildCommand(opts *options) *cobra.Command {
	var (
		output string
		emitC  bool
	)

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Compile a file to an executable",
		Long: `Lowers the file to C and runs the configured C compiler on it.

With --emit-c the C source is printed instead and no compiler is run.`,
		Args: cobra.ExactArgs(1),
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
			unit, err := codegen.Generate(stmts)
			if err != nil {
				return s.fail(out, err)
			}

			if emitC {
				fmt.Fprint(out, unit.Source)
				return nil
			}

			if output == "" {
				output = s.cfg.OutputFor(s.path)
			}
			result, err := codegen.Compile(cmd.Context(), unit, codegen.Options{
				Compiler: s.cfg.Build.Compiler,
				Output:   output,
				Flags:    s.cfg.Build.Flags,
				KeepC:    s.cfg.Build.KeepC,
			})
			if err != nil {
				return s.fail(out, err)
			}

			if result.Log != "" {
				fmt.Fprint(cmd.ErrOrStderr(), result.Log)
			}
			if result.CFile != "" {
				log.Infof("kept generated source %s", result.CFile)
			}
			s.succeed(out, "Built %s", result.Binary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "path of the produced binary")
	cmd.Flags().BoolVar(&emitC, "emit-c", false, "print the generated C instead of compiling")
	return cmd
}
