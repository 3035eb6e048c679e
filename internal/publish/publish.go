package publish

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/docsite/internal/build"
	"github.com/vango-dev/docsite/internal/config"
	"github.com/vango-dev/docsite/internal/errors"
	"github.com/vango-dev/docsite/internal/telemetry"
)

// BuildIDKey is the object metadata key holding the build id.
const BuildIDKey = "docsite-build-id"

// Client is the subset of *s3.Client used by Publisher.
type Client interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client creates an S3 client from the default AWS credential chain.
// cfg.Region overrides the region from the environment.
func NewS3Client(ctx context.Context, cfg config.PublishConfig) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New("E301").
			WithSuggestion("Check AWS_PROFILE or AWS_ACCESS_KEY_ID").
			Wrap(err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// Options configures a Publisher.
type Options struct {
	// Bucket is the destination bucket. Required.
	Bucket string

	// Prefix is prepended to every key.
	Prefix string

	// CacheControl is set on every object.
	CacheControl string

	// Concurrency bounds parallel uploads. Zero means one per CPU.
	Concurrency int

	// DryRun lists the keys without uploading.
	DryRun bool

	// Logger receives per-object debug logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics counts uploaded objects. May be nil.
	Metrics *telemetry.Metrics
}

// FromConfig returns Options for cfg.
func FromConfig(cfg config.PublishConfig) Options {
	return Options{
		Bucket:       cfg.Bucket,
		Prefix:       cfg.Prefix,
		CacheControl: cfg.CacheControl,
	}
}

// Result summarizes a publish.
type Result struct {
	// BuildID is the id of the published build.
	BuildID string

	// Keys are the object keys written, sorted.
	Keys []string

	// Bytes is the total size uploaded.
	Bytes int64
}

// Publisher uploads a build output directory to a bucket.
type Publisher struct {
	client  Client
	options Options
}

// New creates a Publisher. It fails with E302 when no bucket is set.
func New(client Client, options Options) (*Publisher, error) {
	if options.Bucket == "" {
		return nil, errors.New("E302").
			WithSuggestion("export DOCSITE_PUBLISH_BUCKET=<bucket>")
	}
	if options.Concurrency <= 0 {
		options.Concurrency = runtime.GOMAXPROCS(0)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Publisher{client: client, options: options}, nil
}

// Publish uploads every file under dir, which must hold a completed build.
func (p *Publisher) Publish(ctx context.Context, dir string) (*Result, error) {
	manifest, err := build.ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.New("E301").WithFile(dir).Wrap(err)
	}

	result := &Result{BuildID: manifest.BuildID}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.options.Concurrency)
	for _, file := range files {
		g.Go(func() error {
			rel, err := filepath.Rel(dir, file)
			if err != nil {
				return err
			}
			key := p.Key(filepath.ToSlash(rel))
			n, err := p.upload(ctx, file, key, manifest.BuildID)
			if err != nil {
				return err
			}
			mu.Lock()
			result.Keys = append(result.Keys, key)
			result.Bytes += n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(result.Keys)
	return result, nil
}

// Key returns the object key for a slash separated path relative to the
// build output.
func (p *Publisher) Key(rel string) string {
	prefix := strings.Trim(p.options.Prefix, "/")
	if prefix == "" {
		return rel
	}
	return prefix + "/" + rel
}

func (p *Publisher) upload(ctx context.Context, file, key, buildID string) (int64, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return 0, errors.New("E301").WithFile(file).Wrap(err)
	}
	if p.options.DryRun {
		p.options.Logger.Info("would upload", "key", key, "bytes", len(data))
		return int64(len(data)), nil
	}

	in := &s3.PutObjectInput{
		Bucket:      aws.String(p.options.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(ContentType(key)),
		Metadata:    map[string]string{BuildIDKey: buildID},
	}
	if p.options.CacheControl != "" {
		in.CacheControl = aws.String(p.options.CacheControl)
	}
	if _, err := p.client.PutObject(ctx, in); err != nil {
		return 0, errors.New("E301").WithFile(key).Wrap(err)
	}

	p.options.Metrics.RecordUpload()
	p.options.Logger.Debug("uploaded", "bucket", p.options.Bucket, "key", key, "bytes", len(data))
	return int64(len(data)), nil
}

// ContentType returns the MIME type for key, defaulting to
// application/octet-stream.
func ContentType(key string) string {
	switch ext := strings.ToLower(path.Ext(key)); ext {
	case ".html":
		return "text/html; charset=utf-8"
	case ".xml":
		return "application/xml"
	case ".json":
		return "application/json"
	case "":
		return "application/octet-stream"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
