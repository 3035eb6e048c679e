package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/docsite/internal/config"
	"github.com/vango-dev/docsite/internal/errors"
	"github.com/vango-dev/docsite/internal/telemetry"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds state shared by every command.
type app struct {
	dir      string
	verbose  bool
	out      io.Writer
	errOut   io.Writer
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *telemetry.Metrics
}

func main() {
	a := &app{out: os.Stdout, errOut: os.Stderr}
	if err := newRootCmd(a).Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.metrics = telemetry.NewMetrics(telemetry.WithRegistry(a.registry))

	rootCmd := &cobra.Command{
		Use:   "docsite",
		Short: "Build and serve markdown documentation sites",
		Long: `docsite turns a directory of markdown pages into a documentation site.

Pages are rendered through a tree of component overrides, so a section of
a page can restyle the elements inside it without touching the rest.

  • Static builds with sitemap and manifest
  • Development server with hot reload
  • Terminal preview of any page
  • Publishing to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(a.logger)
		},
	}
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	rootCmd.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "Project directory (searched upward for docsite.json)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		initCmd(a),
		buildCmd(a),
		devCmd(a),
		showCmd(a),
		publishCmd(a),
		versionCmd(a),
	)
	return rootCmd
}

// loadConfig finds docsite.json from the project directory and validates it.
func (a *app) loadConfig() (*config.Config, error) {
	root, err := config.FindProjectRoot(a.dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startTracing installs the configured exporter. The returned func flushes
// pending spans.
func (a *app) startTracing(ctx context.Context, cfg *config.Config) func() {
	shutdown, err := telemetry.InitTracing(ctx, cfg.Tracing, a.errOut)
	if err != nil {
		a.logger.Warn("tracing disabled", "error", err)
		return func() {}
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			a.logger.Warn("flushing traces", "error", err)
		}
	}
}

var checkMark = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("✓")

// success prints a success message.
func (a *app) success(format string, args ...any) {
	fmt.Fprintf(a.out, "%s %s\n", checkMark, fmt.Sprintf(format, args...))
}

// info prints an info message.
func (a *app) info(format string, args ...any) {
	fmt.Fprintf(a.out, "  %s\n", fmt.Sprintf(format, args...))
}
