package build

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/docsite/internal/config"
	"github.com/vango-dev/docsite/internal/errors"
	"github.com/vango-dev/docsite/internal/site"
	"github.com/vango-dev/docsite/pkg/content"
	"github.com/vango-dev/docsite/pkg/render"
	"github.com/vango-dev/docsite/pkg/vdom"
)

// ManifestFile is the name of the build manifest in the output directory.
const ManifestFile = "manifest.json"

// Result contains the build output.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Output is the path to the output directory.
	Output string

	// Pages is the number of pages rendered.
	Pages int

	// Assets is the number of static files copied.
	Assets int

	// Manifest describes every generated file.
	Manifest *Manifest
}

// Manifest is written to manifest.json after a successful build.
type Manifest struct {
	BuildID     string            `json:"buildId"`
	GeneratedAt time.Time         `json:"generatedAt"`
	BaseURL     string            `json:"baseUrl"`
	Pages       []ManifestPage    `json:"pages"`
	Assets      map[string]string `json:"assets,omitempty"`
}

// ManifestPage records one rendered page.
type ManifestPage struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
	File      string `json:"file"`
	SHA256    string `json:"sha256"`
}

// Options configures the builder.
type Options struct {
	// Concurrency bounds parallel page renders. Zero uses build.concurrency
	// from the config, then one per CPU.
	Concurrency int

	// Logger receives per-file debug logs. Defaults to slog.Default().
	Logger *slog.Logger

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder renders a whole site to static files.
type Builder struct {
	config   *config.Config
	renderer *site.Renderer
	options  Options
}

// New creates a new builder.
func New(r *site.Renderer, options Options) *Builder {
	cfg := r.Config()
	if options.Concurrency <= 0 {
		options.Concurrency = cfg.Build.Concurrency
	}
	if options.Concurrency <= 0 {
		options.Concurrency = runtime.GOMAXPROCS(0)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return &Builder{
		config:   cfg,
		renderer: r,
		options:  options,
	}
}

// Build performs a full static build.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	outputDir := b.config.OutputPath()

	b.progress("Cleaning output directory...")
	if err := os.RemoveAll(outputDir); err != nil {
		return nil, errors.New("E142").WithFile(outputDir).Wrap(err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.New("E142").WithFile(outputDir).Wrap(err)
	}

	b.progress("Loading pages...")
	s, err := b.renderer.Load(ctx)
	if err != nil {
		return nil, err
	}

	b.progress("Rendering " + strconv.Itoa(s.Len()) + " pages...")
	pages, err := b.renderPages(ctx, outputDir, s)
	if err != nil {
		return nil, err
	}

	b.progress("Copying static files...")
	assets, err := b.copyStatic(outputDir)
	if err != nil {
		return nil, err
	}

	b.progress("Writing 404 page...")
	if err := b.writeFile(outputDir, "404.html", func(w io.Writer) error {
		return b.renderer.RenderNotFound(w)
	}); err != nil {
		return nil, err
	}

	if home := b.homeRedirect(s); home != nil {
		if err := b.writeFile(outputDir, "index.html", func(w io.Writer) error {
			return render.NewRenderer(render.RendererConfig{}).RenderPage(w, *home)
		}); err != nil {
			return nil, err
		}
	}

	if b.config.URL != "" {
		b.progress("Writing sitemap...")
		if err := b.writeFile(outputDir, SitemapFile, func(w io.Writer) error {
			return writeSitemap(w, b.config.URL, s.Pages())
		}); err != nil {
			return nil, err
		}
	}

	manifest := &Manifest{
		BuildID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		BaseURL:     b.config.BaseURL,
		Pages:       pages,
		Assets:      assets,
	}
	b.progress("Writing manifest...")
	if err := b.writeManifest(outputDir, manifest); err != nil {
		return nil, err
	}

	return &Result{
		Duration: time.Since(start),
		Output:   outputDir,
		Pages:    len(pages),
		Assets:   len(assets),
		Manifest: manifest,
	}, nil
}

// renderPages renders every page in parallel. Entries keep site order.
func (b *Builder) renderPages(ctx context.Context, outputDir string, s *content.Site) ([]ManifestPage, error) {
	all := s.Pages()
	out := make([]ManifestPage, len(all))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.options.Concurrency)
	for i, p := range all {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := b.renderer.Render(ctx, &buf, p); err != nil {
				return err
			}
			rel := b.pageFile(p)
			if err := b.writeFile(outputDir, rel, func(w io.Writer) error {
				_, err := w.Write(buf.Bytes())
				return err
			}); err != nil {
				return err
			}
			sum := sha256.Sum256(buf.Bytes())
			out[i] = ManifestPage{
				ID:        p.ID,
				Title:     p.Title,
				Permalink: p.Permalink,
				File:      rel,
				SHA256:    hex.EncodeToString(sum[:]),
			}
			b.options.Logger.Debug("rendered page", "id", p.ID, "file", rel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// pageFile maps a permalink to its file under the output directory, relative
// and slash separated. The base URL prefix is dropped since the output
// directory is served at the base URL.
func (b *Builder) pageFile(p *content.Page) string {
	rel := strings.TrimPrefix(p.Permalink, strings.TrimRight(b.config.BaseURL, "/"))
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return "index.html"
	}
	return rel + "/index.html"
}

// homeRedirect returns a document redirecting the base URL to the first
// page, or nil when a page already renders there or the site is empty.
func (b *Builder) homeRedirect(s *content.Site) *render.PageData {
	pages := s.Pages()
	if len(pages) == 0 {
		return nil
	}
	for _, p := range pages {
		if b.pageFile(p) == "index.html" {
			return nil
		}
	}
	target := pages[0].Permalink
	// json.Marshal escapes <, > and & so the literal cannot close the script.
	quoted, _ := json.Marshal(target)
	return &render.PageData{
		Title:   b.config.Title,
		Lang:    b.config.Lang,
		Body:    vdom.P(vdom.A(vdom.Href(target), pages[0].Title)),
		Scripts: []render.ScriptTag{{Inline: "location.replace(" + string(quoted) + ")"}},
	}
}

// copyStatic copies the static directory, minus dotfiles, into the output
// and returns the SHA-256 of each copied file keyed by its relative path.
func (b *Builder) copyStatic(outputDir string) (map[string]string, error) {
	srcDir := b.config.StaticPath()
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		return nil, nil
	}

	assets := make(map[string]string)
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != srcDir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(outputDir, relPath)
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}
		if err := copyFile(path, destPath); err != nil {
			return err
		}

		hash, err := hashFile(destPath)
		if err != nil {
			return err
		}
		assets[filepath.ToSlash(relPath)] = hash
		b.options.Logger.Debug("copied static file", "file", relPath)
		return nil
	})
	if err != nil {
		return nil, errors.New("E142").WithFile(srcDir).Wrap(err)
	}
	return assets, nil
}

// writeFile creates rel under outputDir and fills it with write.
func (b *Builder) writeFile(outputDir, rel string, write func(io.Writer) error) error {
	path := filepath.Join(outputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("E142").WithFile(path).Wrap(err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.New("E142").WithFile(path).Wrap(err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.New("E142").WithFile(path).Wrap(err)
	}
	return nil
}

// writeManifest writes the build manifest.
func (b *Builder) writeManifest(outputDir string, manifest *Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}

	manifestPath := filepath.Join(outputDir, ManifestFile)
	if err := os.WriteFile(manifestPath, append(data, '\n'), 0644); err != nil {
		return errors.New("E142").WithFile(manifestPath).Wrap(err)
	}
	return nil
}

// progress reports build progress.
func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
}

// ReadManifest reads the manifest of a previous build.
func ReadManifest(outputDir string) (*Manifest, error) {
	path := filepath.Join(outputDir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E142").
			WithFile(path).
			WithSuggestion("Run 'docsite build' first").
			Wrap(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.New("E142").WithFile(path).Wrap(err)
	}
	return &m, nil
}

// hashFile returns the SHA256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies a file.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// Clean removes the build output directory.
func (b *Builder) Clean() error {
	return os.RemoveAll(b.config.OutputPath())
}
