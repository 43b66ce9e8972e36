package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/topicmapgo/internal/app"
	"github.com/specialistvlad/topicmapgo/internal/config"
	"github.com/spf13/cobra"
)

// Version is reported by the version command. Release builds set it with
// -ldflags.
var Version = "dev"

const appName = "topicmapgo"

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath          string
	logLevel            string
	logFormat           string
	base                string
	metrics             bool
	autoItemIdentifiers bool
}

// overrides turns the set flags into a partial configuration.
func (o *options) overrides() *config.Config {
	return &config.Config{
		Log: config.LogConfig{Level: o.logLevel, Format: o.logFormat},
		Map: config.MapConfig{
			BaseLocator:         o.base,
			AutoItemIdentifiers: o.autoItemIdentifiers,
		},
		Metrics: config.MetricsConfig{Enabled: o.metrics},
	}
}

// newApp resolves the configuration and builds the application.
func (o *options) newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := app.ResolveConfig(o.configPath, o.overrides())
	if err != nil {
		return nil, usageError(err)
	}
	a, err := app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
	if err != nil {
		return nil, usageError(err)
	}
	return a, nil
}

// NewRootCommand builds the topicmapgo command tree. Results go to outW,
// logs and diagnostics to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "In-memory topic map engine",
		Long: `topicmapgo loads topic map fixtures written in HCL into an in-memory
topic map. Topics sharing an identifier are merged automatically and
duplicate names, occurrences and associations are collapsed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(outW)
	cmd.SetErr(errW)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); default info")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (text, json); default text")
	flags.StringVar(&opts.base, "base", "", "Base locator for fixture labels")
	flags.BoolVar(&opts.metrics, "metrics", false, "Collect Prometheus metrics and print them after the command")
	flags.BoolVar(&opts.autoItemIdentifiers, "auto-item-identifiers", false, "Give anonymous topics a generated item identifier")

	cmd.AddCommand(loadCmd(opts), resolveCmd(opts), versionCmd())
	return cmd
}

func loadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "load PATH...",
		Short: "Load fixtures and print a summary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			report, err := a.Load(cmd.Context(), args...)
			if err != nil {
				return err
			}
			if err := a.WriteReport(report); err != nil {
				return err
			}
			return writeMetrics(a)
		},
	}
}

func resolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve LOCATOR [PATH...]",
		Short: "Print the construct addressed by a locator",
		Long: `Resolve loads the fixtures under PATH and prints the construct holding
LOCATOR as item identifier, subject identifier or subject locator. A
LOCATOR that is not an absolute IRI is read as a label relative to the
base locator.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if len(args) > 1 {
				if _, err := a.Load(ctx, args[1:]...); err != nil {
					return err
				}
			}
			d, err := a.Resolve(ctx, args[0])
			if errors.Is(err, app.ErrNotFound) {
				return &ExitError{Code: ExitFailure, Message: err.Error()}
			}
			if err != nil {
				return err
			}
			if err := a.WriteDescription(d); err != nil {
				return err
			}
			return writeMetrics(a)
		},
	}
}

// writeMetrics prints the metrics when they are enabled.
func writeMetrics(a *app.App) error {
	if err := a.WriteMetrics(); err != nil && !errors.Is(err, app.ErrMetricsDisabled) {
		return err
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	}
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, outW, errW io.Writer, args []string) error {
	cmd := NewRootCommand(outW, errW)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
