// Package publish uploads a built site to an S3 bucket.
//
// Every file in the build output becomes one object, keyed by its path
// below the output directory plus publish.prefix. Objects carry the build
// id from manifest.json as metadata so a deployed site can be traced back
// to its build.
//
//	client, err := publish.NewS3Client(ctx, cfg.Publish)
//	p, err := publish.New(client, publish.FromConfig(cfg.Publish))
//	result, err := p.Publish(ctx, cfg.OutputPath())
package publish
