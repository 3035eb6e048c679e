package site

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/docsite/internal/config"
	"github.com/vango-dev/docsite/internal/telemetry"
	"github.com/vango-dev/docsite/pkg/content"
	"github.com/vango-dev/docsite/pkg/mdx"
	"github.com/vango-dev/docsite/pkg/render"
	"github.com/vango-dev/docsite/pkg/vdom"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithComponents overlays c on the built-in components for every page.
func WithComponents(c mdx.Components) Option {
	return func(r *Renderer) {
		r.components = c
	}
}

// WithMetrics records renders and loads in m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for render spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) {
		r.tracer = t
	}
}

// WithScripts appends scripts to every page.
func WithScripts(scripts ...render.ScriptTag) Option {
	return func(r *Renderer) {
		r.scripts = append(r.scripts, scripts...)
	}
}

// Renderer turns pages into complete HTML documents for one site.
// It is safe for concurrent use.
type Renderer struct {
	cfg        *config.Config
	components mdx.Components
	root       *mdx.Scope
	html       *render.Renderer
	scripts    []render.ScriptTag
	metrics    *telemetry.Metrics
	tracer     trace.Tracer
}

// New creates a Renderer for cfg.
func New(cfg *config.Config, opts ...Option) *Renderer {
	r := &Renderer{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}

	root := mdx.NewContext(r.components).Root()
	if len(cfg.Render.Classes) > 0 {
		root = root.Provide(mdx.AddClass(cfg.Render.Classes))
	}
	if class := cfg.Render.Wrapper; class != "" {
		root = root.Provide(mdx.Wrap(func(p mdx.Props) *vdom.VNode {
			return vdom.Div(vdom.Class(class), p.Children)
		}))
	}
	r.root = root
	r.html = render.NewRenderer(render.RendererConfig{Pretty: cfg.Render.Pretty})
	return r
}

// Config returns the site configuration.
func (r *Renderer) Config() *config.Config {
	return r.cfg
}

// ContentOptions returns the page loading options for the site.
func (r *Renderer) ContentOptions() content.Options {
	return content.Options{
		BaseURL:       strings.TrimRight(r.cfg.BaseURL, "/"),
		RouteBasePath: r.cfg.Docs.RouteBasePath,
		EditURL:       r.cfg.Docs.EditURL,
		IncludeDrafts: r.cfg.Docs.IncludeDrafts,
	}
}

// Load loads every page in the docs directory.
func (r *Renderer) Load(ctx context.Context) (*content.Site, error) {
	dir := r.cfg.DocsPath()
	_, span := telemetry.Start(ctx, r.tracer, "docsite.load", attribute.String("docsite.docs_dir", dir))
	s, err := content.LoadDir(os.DirFS(dir), r.ContentOptions())
	r.metrics.ObserveLoad(err)
	telemetry.End(span, err)
	return s, err
}

// Render writes the document for p to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, p *content.Page) error {
	return r.observe(ctx, p, func(data render.PageData) error {
		return r.html.RenderPage(w, data)
	})
}

// Stream writes the document for p to an HTTP response, flushing after the
// head.
func (r *Renderer) Stream(ctx context.Context, w http.ResponseWriter, p *content.Page) error {
	return r.observe(ctx, p, func(data render.PageData) error {
		return render.NewStreamingRenderer(w, r.html).RenderPage(data)
	})
}

// RenderNotFound writes the site's 404 document.
func (r *Renderer) RenderNotFound(w io.Writer) error {
	return r.html.RenderPage(w, r.notFound())
}

// StreamNotFound writes the 404 document to an HTTP response.
func (r *Renderer) StreamNotFound(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	return r.html.RenderPage(w, r.notFound())
}

func (r *Renderer) observe(ctx context.Context, p *content.Page, write func(render.PageData) error) error {
	_, span := telemetry.Start(ctx, r.tracer, "docsite.render",
		attribute.String("docsite.page.id", p.ID),
		attribute.String("docsite.page.permalink", p.Permalink),
	)
	start := time.Now()
	err := write(r.Document(p))
	r.metrics.ObserveRender(time.Since(start), err)
	telemetry.End(span, err)
	return err
}

// Document builds the full document data for p.
func (r *Renderer) Document(p *content.Page) render.PageData {
	body := mdx.RenderDocument(r.root, p.Body, mdx.DocumentOptions{Overlay: p.Overlay})

	data := r.shell(p, p.Title, body)
	data.Description = p.Description
	if r.cfg.URL != "" {
		data.Canonical = strings.TrimRight(r.cfg.URL, "/") + p.Permalink
	}
	data.Meta = []render.MetaTag{
		{Property: "og:title", Content: p.Title},
		{Property: "og:description", Content: p.Description},
	}
	if data.Canonical != "" {
		data.Meta = append(data.Meta, render.MetaTag{Property: "og:url", Content: data.Canonical})
	}
	return data
}

func (r *Renderer) notFound() render.PageData {
	body := vdom.Div(vdom.Class("not-found"),
		vdom.H1("Page Not Found"),
		vdom.P("We could not find what you were looking for."),
	)
	return r.shell(nil, "Page Not Found", body)
}

func (r *Renderer) shell(p *content.Page, title string, body *vdom.VNode) render.PageData {
	if r.cfg.Title != "" && title != r.cfg.Title {
		title = title + " | " + r.cfg.Title
	}
	return render.PageData{
		Title:       title,
		Lang:        r.cfg.Lang,
		Body:        r.layout(p, body),
		StyleSheets: r.cfg.Render.StyleSheets,
		Styles:      []string{baseStyles},
		Scripts:     r.scripts,
	}
}
