package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/docsite/internal/build"
	"github.com/vango-dev/docsite/internal/config"
	"github.com/vango-dev/docsite/internal/site"
	"github.com/vango-dev/docsite/internal/telemetry"
)

func buildCmd(a *app) *cobra.Command {
	var (
		output      string
		concurrency int
		drafts      bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the static site",
		Long: `Render every page to static HTML.

This command:
  • Renders pages in parallel
  • Copies the static directory
  • Writes 404.html, sitemap.xml (when url is set) and manifest.json

Examples:
  docsite build
  docsite build --output=public
  docsite build --drafts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Build.Output = output
			}
			if concurrency > 0 {
				cfg.Build.Concurrency = concurrency
			}
			if drafts {
				cfg.Docs.IncludeDrafts = true
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			defer a.startTracing(ctx, cfg)()

			_, err = runBuild(ctx, a, cfg)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from docsite.json)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "Parallel page renders (default one per CPU)")
	cmd.Flags().BoolVar(&drafts, "drafts", false, "Include draft pages")

	return cmd
}

func runBuild(ctx context.Context, a *app, cfg *config.Config) (*build.Result, error) {
	a.info("Building %s...", cfg.Title)
	fmt.Fprintln(a.out)

	builder := build.New(site.New(cfg, site.WithTracer(telemetry.Tracer()), site.WithMetrics(a.metrics)), build.Options{
		Logger: a.logger,
		OnProgress: func(step string) {
			a.info("%s", step)
		},
	})
	result, err := builder.Build(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(a.out)
	a.success("Built %d pages and %d static files in %s", result.Pages, result.Assets, result.Duration.Round(time.Millisecond))
	a.info("Output: %s", result.Output)
	a.info("Build:  %s", result.Manifest.BuildID)
	return result, nil
}
