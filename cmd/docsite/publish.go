package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/docsite/internal/publish"
)

func publishCmd(a *app) *cobra.Command {
	var (
		bucket      string
		prefix      string
		concurrency int
		dryRun      bool
		skipBuild   bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Build and upload the site to S3",
		Long: `Build the site, then upload the output directory to an S3 bucket.

Credentials come from the standard AWS chain (environment, shared
config, instance role).

Examples:
  docsite publish --bucket=docs.example.com
  DOCSITE_PUBLISH_BUCKET=docs docsite publish --prefix=v2
  docsite publish --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}
			if prefix != "" {
				cfg.Publish.Prefix = prefix
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			defer a.startTracing(ctx, cfg)()

			opts := publish.FromConfig(cfg.Publish)
			opts.Concurrency = concurrency
			opts.DryRun = dryRun
			opts.Logger = a.logger
			opts.Metrics = a.metrics

			var client publish.Client
			if !dryRun {
				c, err := publish.NewS3Client(ctx, cfg.Publish)
				if err != nil {
					return err
				}
				client = c
			}
			p, err := publish.New(client, opts)
			if err != nil {
				return err
			}

			if !skipBuild {
				if _, err := runBuild(ctx, a, cfg); err != nil {
					return err
				}
			}

			result, err := p.Publish(ctx, cfg.OutputPath())
			if err != nil {
				return err
			}
			verb := "Uploaded"
			if dryRun {
				verb = "Would upload"
			}
			a.success("%s %d objects (%s) to s3://%s/%s", verb, len(result.Keys), formatBytes(result.Bytes),
				cfg.Publish.Bucket, p.Key(""))
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Destination bucket (default from docsite.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from docsite.json)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "Parallel uploads (default one per CPU)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List objects without uploading")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Upload the existing build output")

	return cmd
}

// formatBytes renders n with a binary unit, e.g. "1.5 KB".
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	v, i := float64(n)/unit, 0
	for v >= unit && i < 5 {
		v /= unit
		i++
	}
	return fmt.Sprintf("%.1f %cB", v, "KMGTPE"[i])
}
