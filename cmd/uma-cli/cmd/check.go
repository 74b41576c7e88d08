package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"uma/internal/codegen"
	"uma/internal/parser"
	"uma/internal/semantic"
	"uma/internal/watch"
)

func newCheckCommand(opts *options) *cobra.Command {
	var watchFile bool

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a source file",
		Long: `Tokenizes and parses the file, then lowers it to C without compiling
to catch calls to undeclared functions.

With --watch the file is checked again on every save until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !watchFile {
				return runCheck(opts, args[0], cmd.OutOrStdout())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchCheck(ctx, opts, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "check again whenever the file changes")
	return cmd
}

func runCheck(opts *options, path string, out io.Writer) error {
	s, err := openSession(opts, path, out)
	if err != nil {
		return err
	}

	stmts, err := parser.ParseSource(s.source)
	if err != nil {
		return s.fail(out, err)
	}
	if _, err := codegen.Generate(stmts); err != nil {
		return s.fail(out, err)
	}

	warnings := semantic.NewAnalyzer().Analyze(stmts)
	for _, w := range warnings {
		fmt.Fprint(out, s.reporter.FormatError(w))
	}

	s.succeed(out, "Checked %s (%s, %s)", path, plural(len(stmts), "statement"), plural(len(warnings), "warning"))
	return nil
}

// watchCheck checks path once, then after every change. Failed checks are
// reported and watching continues.
func watchCheck(ctx context.Context, opts *options, path string, out io.Writer) error {
	check := func(path string) {
		err := runCheck(opts, path, out)
		if err != nil && !stderrors.Is(err, errReported) {
			printError(out, err)
		}
		fmt.Fprintf(out, "watching %s for changes\n", path)
	}

	check(path)
	return watch.Watch(ctx, path, check)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
