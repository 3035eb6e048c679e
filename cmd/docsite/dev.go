package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/docsite/internal/dev"
	"github.com/vango-dev/docsite/internal/telemetry"
)

func devCmd(a *app) *cobra.Command {
	var (
		port     int
		host     string
		noReload bool
		drafts   bool
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Serve the docs with hot reload.

Pages are rendered on request. Editing a page, a static file or
docsite.json refreshes connected browsers.

Examples:
  docsite dev
  docsite dev --port=8080
  docsite dev --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}
			if noReload {
				off := false
				cfg.Dev.HotReload = &off
			}
			if drafts {
				cfg.Docs.IncludeDrafts = true
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			defer a.startTracing(ctx, cfg)()

			srv := dev.NewServer(dev.ServerOptions{
				Config:        cfg,
				Logger:        a.logger,
				Metrics:       a.metrics,
				Gatherer:      a.registry,
				Tracer:        telemetry.Tracer(),
				IncludeDrafts: drafts,
			})
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from docsite.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from docsite.json)")
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "Disable hot reload")
	cmd.Flags().BoolVar(&drafts, "drafts", false, "Include draft pages")

	return cmd
}
