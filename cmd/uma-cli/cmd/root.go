package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"uma/internal/config"
	"uma/internal/errors"
	"uma/token"
)

// Version is stamped at build time with -ldflags.
var Version = "0.1.0-dev"

var log = commonlog.GetLogger("uma.cli")

// errReported marks a failure whose diagnostics were already printed.
var errReported = stderrors.New("compilation failed")

// terminal records whether color detection found a terminal on stdout,
// before any flag overrides it.
var terminal = !color.NoColor

type options struct {
	cfgFile string
	noColor bool
	verbose bool
}

// NewRootCommand assembles the command tree. Each call has its own flag state.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "uma",
		Short: "uma language compiler front end",
		Long: `uma reads uma source files, reports diagnostics and lowers programs to C.

Commands:
  check   - tokenize, parse and validate a file
  tokens  - print the token stream
  ast     - print the parsed statements
  build   - compile a file to an executable through the C toolchain`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbosity := 0
			if opts.verbose {
				verbosity = 2
			}
			commonlog.Configure(verbosity, nil)
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "project file (default: nearest uma.toml)")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newCheckCommand(opts),
		newTokensCommand(opts),
		newASTCommand(opts),
		newBuildCommand(opts),
		newExplainCommand(),
		newVersionCommand(),
	)
	return root
}

func Execute() error {
	root := NewRootCommand()
	err := root.Execute()
	if err != nil && !stderrors.Is(err, errReported) {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", color.RedString("error:"), err)
}

// session is one source file with the settings that govern it.
type session struct {
	path     string
	source   string
	cfg      *config.Config
	reporter *errors.ErrorReporter
	started  time.Time
}

func openSession(opts *options, path string, out io.Writer) (*session, error) {
	cfg, err := loadConfig(opts, path)
	if err != nil {
		diag := errors.NewDiagnostic(errors.ErrorInvalidConfig, err.Error(), token.Position{}).Build()
		fmt.Fprint(out, errors.NewErrorReporter(configName(opts), "").FormatError(diag))
		return nil, errReported
	}
	color.NoColor = opts.noColor || !cfg.UseColor(terminal)

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	reporter := errors.NewErrorReporter(path, string(source))
	reporter.ContextLines = cfg.Diagnostics.ContextLines

	log.Debugf("session for %s (config %s)", path, cfg.Path)
	return &session{
		path:     path,
		source:   string(source),
		cfg:      cfg,
		reporter: reporter,
		started:  time.Now(),
	}, nil
}

func configName(opts *options) string {
	if opts.cfgFile != "" {
		return opts.cfgFile
	}
	return config.FileName
}

func loadConfig(opts *options, path string) (*config.Config, error) {
	if opts.cfgFile != "" {
		return config.Load(opts.cfgFile)
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	return config.LoadFor(dir)
}

// fail renders err against the session source and marks the command failed.
func (s *session) fail(w io.Writer, err error) error {
	fmt.Fprint(w, s.reporter.Format(err))
	color.New(color.FgRed).Fprintf(w, "Compilation failed after %s\n", formatDuration(time.Since(s.started)))
	return errReported
}

func (s *session) succeed(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	color.New(color.FgGreen).Fprintf(w, "%s in %s\n", msg, formatDuration(time.Since(s.started)))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
