package site

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vango-dev/docsite/internal/config"
	"github.com/vango-dev/docsite/internal/errors"
	"github.com/vango-dev/docsite/internal/telemetry"
	"github.com/vango-dev/docsite/pkg/content"
	"github.com/vango-dev/docsite/pkg/mdx"
	"github.com/vango-dev/docsite/pkg/render"
	"github.com/vango-dev/docsite/pkg/vdom"
)

const etcdPage = "# etcd\n\nGlossary of etcd commands.\n\n## Members\n\n```sh\netcdctl member list\n```\n"

func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.URL = "https://docs.example.com"
	cfg.Paths.Docs = writeDocs(t, map[string]string{
		"intro.md":          "---\ntitle: Intro\nsidebar_position: 1\n---\nWelcome.\n",
		"commands/etcd.md":  etcdPage,
		"commands/_wip.md":  "# skipped\n",
		"commands/draft.md": "---\ndraft: true\n---\n# Draft\n",
	})
	cfg.Docs.EditURL = "https://github.com/acme/docs/edit/main/docs"
	return cfg
}

func load(t *testing.T, r *Renderer) *content.Site {
	t.Helper()
	s, err := r.Load(context.Background())
	require.NoError(t, err)
	return s
}

func renderPage(t *testing.T, r *Renderer, s *content.Site, id string) string {
	t.Helper()
	p, err := s.Page(id)
	require.NoError(t, err)
	var sb strings.Builder
	require.NoError(t, r.Render(context.Background(), &sb, p))
	return sb.String()
}

func TestLoad(t *testing.T) {
	r := New(testConfig(t))
	s := load(t, r)

	ids := make([]string, 0, s.Len())
	for _, p := range s.Pages() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"intro", "commands/etcd"}, ids)
}

func TestLoad_MissingDir(t *testing.T) {
	cfg := config.New()
	cfg.Paths.Docs = filepath.Join(t.TempDir(), "nope")

	_, err := New(cfg).Load(context.Background())
	require.Error(t, err)
}

func TestContentOptions(t *testing.T) {
	cfg := config.New()
	cfg.BaseURL = "/support/"
	cfg.Docs.IncludeDrafts = true

	assert.Equal(t, content.Options{
		BaseURL:       "/support",
		RouteBasePath: "docs",
		IncludeDrafts: true,
	}, New(cfg).ContentOptions())
}

func TestRender_Document(t *testing.T) {
	r := New(testConfig(t))
	s := load(t, r)
	out := renderPage(t, r, s, "commands/etcd")

	assert.Contains(t, out, "<title>etcd | Docs</title>")
	assert.Contains(t, out, `<link href="https://docs.example.com/docs/commands/etcd" rel="canonical">`)
	assert.Contains(t, out, `<meta content="Glossary of etcd commands." name="description">`)
	assert.Contains(t, out, `<meta content="etcd" property="og:title">`)
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, `<article class="doc"><h1 id="etcd">etcd`)
	assert.Contains(t, out, `<code class="language-sh" data-lang="sh">etcdctl member list`)
	assert.Contains(t, out, `<li data-level="2"><a href="#members">Members</a></li>`)
	assert.Contains(t, out,
		`<a class="edit-link" href="https://github.com/acme/docs/edit/main/docs/commands/etcd.md">Edit this page</a>`)
	assert.Contains(t, out, `<a class="pagination-prev" href="/docs/intro">Intro</a>`)
	assert.NotContains(t, out, "pagination-next")
}

func TestRender_Layout(t *testing.T) {
	r := New(testConfig(t))
	s := load(t, r)
	out := renderPage(t, r, s, "intro")

	assert.Contains(t, out, `<header class="navbar"><a class="navbar-brand" href="/">Docs</a></header>`)
	assert.Contains(t, out, `<a class="pagination-next" href="/docs/commands/etcd">etcd</a>`)
	assert.NotContains(t, out, "pagination-prev")
	assert.NotContains(t, out, `class="toc"`)
}

func TestRender_ConfiguredOverrides(t *testing.T) {
	cfg := testConfig(t)
	cfg.Render.Classes = map[string]string{"pre": "shiki", "h2": "anchor"}
	cfg.Render.Wrapper = "markdown"
	cfg.Render.StyleSheets = []string{"/css/custom.css"}
	r := New(cfg)
	s := load(t, r)
	out := renderPage(t, r, s, "commands/etcd")

	assert.Contains(t, out, `<article class="doc"><div class="markdown"><h1 id="etcd">`)
	assert.Contains(t, out, `<pre class="shiki"><code class="language-sh"`)
	assert.Contains(t, out, `<h2 class="anchor" id="members">`)
	assert.Contains(t, out, `<link href="/css/custom.css" rel="stylesheet">`)
}

func TestRender_PageOverrides(t *testing.T) {
	cfg := testConfig(t)
	cfg.Render.Classes = map[string]string{"pre": "shiki"}
	cfg.Render.Wrapper = "markdown"
	cfg.Paths.Docs = writeDocs(t, map[string]string{
		"wide.md":  "---\nwrapper_class: wide\nclasses:\n  pre: dark\n---\n```sh\nls\n```\n",
		"plain.md": "```sh\nls\n```\n",
	})
	r := New(cfg)
	s := load(t, r)

	wide := renderPage(t, r, s, "wide")
	assert.Contains(t, wide, `<div class="markdown wide">`)
	assert.Contains(t, wide, `<pre class="shiki dark"><code class="language-sh"`)
	assert.Equal(t, wide, renderPage(t, r, s, "wide"))

	plain := renderPage(t, r, s, "plain")
	assert.Contains(t, plain, `<div class="markdown"><pre class="shiki"><code class="language-sh"`)
	assert.NotContains(t, plain, "markdown wide")
	assert.NotContains(t, plain, "shiki dark")
}

func TestRender_SiteComponents(t *testing.T) {
	callout := mdx.RendererFunc(func(p mdx.Props) *vdom.VNode {
		return vdom.El("blockquote", vdom.Class("callout"), p.Children)
	})
	cfg := testConfig(t)
	cfg.Paths.Docs = writeDocs(t, map[string]string{"note.md": "> careful\n"})
	r := New(cfg, WithComponents(mdx.Components{"blockquote": callout}))
	s := load(t, r)

	assert.Contains(t, renderPage(t, r, s, "note"), `<blockquote class="callout"><p>careful</p></blockquote>`)
}

func TestRender_Scripts(t *testing.T) {
	r := New(testConfig(t), WithScripts(render.ScriptTag{Src: "/_docsite/reload.js", Defer: true}))
	s := load(t, r)

	assert.Contains(t, renderPage(t, r, s, "intro"), `<script defer src="/_docsite/reload.js"></script></body>`)
}

func TestRender_Telemetry(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	r := New(testConfig(t),
		WithMetrics(telemetry.NewMetrics(telemetry.WithRegistry(reg))),
		WithTracer(tp.Tracer("test")),
	)
	s := load(t, r)
	renderPage(t, r, s, "intro")

	n, err := testutil.GatherAndCount(reg, "docsite_pages_rendered_total", "docsite_content_loads_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	names := make([]string, 0, 2)
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{"docsite.load", "docsite.render"}, names)
}

func TestRender_WriteError(t *testing.T) {
	r := New(testConfig(t))
	s := load(t, r)
	p, err := s.Page("intro")
	require.NoError(t, err)

	err = r.Render(context.Background(), failingWriter{}, p)
	require.Error(t, err)
	assert.Equal(t, "E003", errors.Code(err))
}

func TestStream(t *testing.T) {
	r := New(testConfig(t))
	s := load(t, r)
	p, err := s.Page("intro")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Stream(context.Background(), rec, p))

	assert.True(t, rec.Flushed)
	assert.Contains(t, rec.Body.String(), "<title>Intro | Docs</title>")
}

func TestNotFound(t *testing.T) {
	r := New(testConfig(t))

	rec := httptest.NewRecorder()
	require.NoError(t, r.StreamNotFound(rec))

	assert.Equal(t, 404, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Page Not Found | Docs</title>")
	assert.Contains(t, body, `<h1>Page Not Found</h1>`)
	assert.Contains(t, body, `class="navbar"`)
	assert.NotContains(t, body, "doc-footer")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }
