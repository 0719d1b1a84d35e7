package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/forPelevin/projroot/internal/config"
	"github.com/forPelevin/projroot/internal/rootpath"
	"github.com/forPelevin/projroot/internal/usecase"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := NewRootCommand(Options{Stdout: os.Stdout, Stderr: os.Stderr})
	if err := root.Execute(); err != nil {
		var ee *ExitError
		if errors.As(err, &ee) {
			if ee.Err != nil {
				fmt.Fprintln(os.Stderr, ee.Err)
			}
			os.Exit(ee.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Options controls the command tree; zero values fall back to the process
// streams and the real environment.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	// NewResolver builds the resolver once config is loaded.
	NewResolver func(cfg config.Config, logger *log.Logger) *usecase.Resolver
	// Getenv is handed to config.Load for PROJROOT_* lookups.
	Getenv func(string) string
}

// ExitError carries an exit code out of a RunE handler. A nil Err exits
// without printing anything.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

func NewRootCommand(opts Options) *cobra.Command {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.NewResolver == nil {
		opts.NewResolver = rootpath.New
	}

	root := &cobra.Command{
		Use:          "projroot",
		Short:        "Print the root directory of the enclosing JavaScript project",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd, opts)
		},
		RunE: runRoot,
	}

	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)
	root.SilenceErrors = true

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file")
	pf.String("format", "", "Output format: text, json or yaml")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.BoolP("verbose", "v", false, "Debug logging and extra report detail")

	root.AddCommand(
		&cobra.Command{
			Use:   "info",
			Short: "Show how the project root was resolved",
			Args:  cobra.NoArgs,
			RunE:  runInfo,
		},
		&cobra.Command{
			Use:   "rel <path>...",
			Short: "Print paths relative to the project root",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runRel,
		},
		&cobra.Command{
			Use:   "has <package>",
			Short: "Check that the project depends on and has installed a package",
			Args:  cobra.ExactArgs(1),
			RunE:  runHas,
		},
	)
	return root
}
