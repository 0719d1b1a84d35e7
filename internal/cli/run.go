package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/forPelevin/projroot/internal/config"
	"github.com/forPelevin/projroot/internal/rootpath"
)

type settingsContextKey struct{}

type settings struct {
	format  string
	verbose bool
}

func setup(cmd *cobra.Command, opts Options) error {
	flags := cmd.Flags()
	cfgPath, _ := flags.GetString("config")
	verbose, _ := flags.GetBool("verbose")

	cfg, err := config.Load(config.LoadOptions{ConfigFile: cfgPath, Getenv: opts.Getenv})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
		cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "projroot",
		Level:  level,
	})

	r := opts.NewResolver(cfg, logger)
	rootpath.SetDefault(r)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = rootpath.WithResolver(ctx, r)
	ctx = context.WithValue(ctx, settingsContextKey{}, settings{format: cfg.Format, verbose: verbose})
	cmd.SetContext(ctx)
	return nil
}

func settingsFrom(ctx context.Context) settings {
	if s, ok := ctx.Value(settingsContextKey{}).(settings); ok {
		return s
	}
	return settings{format: config.FormatText}
}

func runRoot(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	r := rootpath.FromContext(ctx)
	out := cmd.OutOrStdout()
	switch f := settingsFrom(ctx).format; f {
	case config.FormatJSON, config.FormatYAML:
		return encode(out, f, map[string]string{"root": r.ProjectRoot()})
	default:
		_, err := fmt.Fprintln(out, r.ProjectRoot())
		return err
	}
}

func runInfo(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	r := rootpath.FromContext(ctx)
	s := settingsFrom(ctx)
	res := r.Resolution()
	switch s.format {
	case config.FormatJSON, config.FormatYAML:
		return encode(cmd.OutOrStdout(), s.format, res)
	default:
		_, err := fmt.Fprint(cmd.OutOrStdout(), renderReport(res, s.verbose))
		return err
	}
}

func runRel(cmd *cobra.Command, args []string) error {
	r := rootpath.FromContext(cmd.Context())
	out := cmd.OutOrStdout()
	for _, a := range args {
		if _, err := fmt.Fprintln(out, r.ShortenPath(a)); err != nil {
			return err
		}
	}
	return nil
}

func runHas(cmd *cobra.Command, args []string) error {
	r := rootpath.FromContext(cmd.Context())
	ok := r.HasPackage(args[0])
	answer := "no"
	if ok {
		answer = "yes"
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), answer); err != nil {
		return err
	}
	if !ok {
		return &ExitError{Code: 1}
	}
	return nil
}

func encode(w io.Writer, format string, v any) error {
	if format == config.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
