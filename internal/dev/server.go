package dev

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/docsite/internal/config"
	"github.com/vango-dev/docsite/internal/errors"
	"github.com/vango-dev/docsite/internal/site"
	"github.com/vango-dev/docsite/internal/telemetry"
	"github.com/vango-dev/docsite/pkg/content"
	"github.com/vango-dev/docsite/pkg/mdx"
	"github.com/vango-dev/docsite/pkg/render"
	"github.com/vango-dev/docsite/pkg/vdom"
)

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Logger receives server logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics records requests, renders and reloads. May be nil.
	Metrics *telemetry.Metrics

	// Gatherer, when set, is served at /metrics.
	Gatherer prometheus.Gatherer

	// Tracer is used for render spans. Defaults to the global tracer.
	Tracer trace.Tracer

	// Components overlay the built-in components.
	Components mdx.Components

	// IncludeDrafts keeps drafts visible across config reloads.
	IncludeDrafts bool

	// OnReload is called after browsers are told to reload.
	OnReload func(clients int)
}

// state is swapped atomically after every load so requests never see a
// half-loaded site.
type state struct {
	renderer *site.Renderer
	site     *content.Site
	err      error
}

// Server is the development server.
type Server struct {
	config       *config.Config
	options      ServerOptions
	logger       *slog.Logger
	watcher      *Watcher
	reloadServer *ReloadServer
	current      atomic.Pointer[state]
	httpServer   *http.Server
	mu           sync.Mutex
	running      bool
}

// NewServer creates a new development server. Call Load before serving.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:  cfg,
		options: options,
		logger:  logger,
		watcher: NewWatcher(WatcherConfig{
			Paths:    CollectWatchPaths(cfg),
			Interval: pollInterval(cfg),
		}),
	}
	if cfg.HotReload() {
		s.reloadServer = NewReloadServer(options.Metrics, logger)
	}
	s.current.Store(&state{renderer: s.newRenderer(cfg)})
	return s
}

func (s *Server) newRenderer(cfg *config.Config) *site.Renderer {
	opts := []site.Option{
		site.WithMetrics(s.options.Metrics),
		site.WithTracer(s.options.Tracer),
		site.WithComponents(s.options.Components),
	}
	if s.reloadEnabled() {
		opts = append(opts, site.WithScripts(render.ScriptTag{Src: ReloadScriptPath, Defer: true}))
	}
	return site.New(cfg, opts...)
}

// Load reloads every page. On failure the error is served in place of
// pages until the next successful load.
func (s *Server) Load(ctx context.Context) error {
	cur := s.current.Load()
	start := time.Now()
	loaded, err := cur.renderer.Load(ctx)
	if err != nil {
		s.current.Store(&state{renderer: cur.renderer, err: err})
		return err
	}
	s.current.Store(&state{renderer: cur.renderer, site: loaded})
	s.logger.Info("loaded pages", "pages", loaded.Len(), "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// reloadConfig re-reads docsite.json. The dev section is fixed for the life
// of the server; route changes need a restart.
func (s *Server) reloadConfig() error {
	if s.config.Path() == "" {
		return nil
	}
	cfg, err := config.LoadFile(s.config.Path())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Dev = s.config.Dev
	if s.options.IncludeDrafts {
		cfg.Docs.IncludeDrafts = true
	}

	cur := s.current.Load()
	next := s.newRenderer(cfg)
	if route := next.ContentOptions().Prefix(); route != cur.renderer.ContentOptions().Prefix() {
		s.logger.Warn("docs route changed; restart docsite dev to apply", "route", route)
	}
	s.current.Store(&state{renderer: next, site: cur.site, err: cur.err})
	s.logger.Info("reloaded config", "path", cfg.Path())
	return nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.options.Metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	if s.options.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", telemetry.MetricsHandler(s.options.Gatherer))
	}
	if s.reloadEnabled() {
		r.Get(ReloadPath, s.reloadServer.HandleWebSocket)
		r.Get(ReloadScriptPath, s.reloadServer.ServeScript)
	}

	prefix := s.current.Load().renderer.ContentOptions().Prefix()
	r.Get(prefix, s.redirectHome)
	r.Get(prefix+"/*", s.servePage)
	r.NotFound(s.serveStatic)

	return telemetry.WrapHandler("docsite.dev", r)
}

// servePage renders the page whose permalink matches the request path.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	st := s.current.Load()
	if st.err != nil {
		s.serveError(w, st.err)
		return
	}
	if st.site == nil {
		http.Error(w, "pages not loaded", http.StatusServiceUnavailable)
		return
	}

	slug := "/" + strings.Trim(strings.TrimSuffix(chi.URLParam(r, "*"), "index.html"), "/")
	p, ok := st.site.BySlug(slug)
	switch {
	case !ok && slug == "/":
		s.redirectHome(w, r)
		return
	case !ok:
		s.serveStatic(w, r)
		return
	}
	if err := st.renderer.Stream(r.Context(), w, p); err != nil {
		s.logger.Error("render failed", "page", p.ID, "error", err)
	}
}

// redirectHome sends the docs root to its index page, or the first page
// when there is none.
func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request) {
	st := s.current.Load()
	if st.site != nil {
		if p, ok := st.site.BySlug("/"); ok && p.Permalink != r.URL.Path {
			http.Redirect(w, r, p.Permalink, http.StatusFound)
			return
		}
		if pages := st.site.Pages(); len(pages) > 0 {
			http.Redirect(w, r, pages[0].Permalink, http.StatusFound)
			return
		}
	}
	if st.err != nil {
		s.serveError(w, st.err)
		return
	}
	s.notFound(w)
}

// serveStatic serves files from the static directory below the base URL.
// The base URL itself redirects to the docs.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	base := strings.TrimRight(s.config.BaseURL, "/")
	rel, ok := strings.CutPrefix(r.URL.Path, base+"/")
	if !ok && r.URL.Path != base {
		s.notFound(w)
		return
	}
	if rel == "" {
		s.redirectHome(w, r)
		return
	}

	file := filepath.Join(s.config.StaticPath(), filepath.FromSlash(path.Clean("/"+rel)))
	if info, err := os.Stat(file); err != nil || info.IsDir() {
		s.notFound(w)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, r, file)
}

func (s *Server) notFound(w http.ResponseWriter) {
	st := s.current.Load()
	if err := st.renderer.StreamNotFound(w); err != nil {
		s.logger.Error("render failed", "page", "404", "error", err)
	}
}

// serveError shows a load error until the next successful load.
func (s *Server) serveError(w http.ResponseWriter, loadErr error) {
	page := render.PageData{
		Title: "Failed to load docs",
		Body: vdom.Main(
			vdom.H1("Failed to load docs"),
			vdom.Pre(errors.FromError(loadErr, "E201").FormatCompact()),
		),
	}
	if s.reloadEnabled() {
		page.Scripts = []render.ScriptTag{{Src: ReloadScriptPath, Defer: true}}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if err := render.NewRenderer(render.RendererConfig{}).RenderPage(w, page); err != nil {
		s.logger.Error("render failed", "page", "error", "error", err)
	}
}

// Start loads the site, then serves and watches until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	if err := s.Load(ctx); err != nil {
		s.logger.Error("load failed", "error", err)
	}

	changeCh := make(chan Change, 64)
	s.watcher.OnChange(func(change Change) {
		select {
		case changeCh <- change:
		default:
		}
	})
	go func() {
		if err := s.watcher.Start(ctx); err != nil && err != context.Canceled {
			s.logger.Error("watcher stopped", "error", err)
		}
	}()
	go s.processChanges(ctx, changeCh)

	s.httpServer = &http.Server{
		Addr:              s.config.DevAddress(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("server running", "url", s.config.DevURL(), "hotReload", s.reloadEnabled())

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		return err
	}
}

// Stop stops the development server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.running = false
	s.watcher.Stop()
	if s.reloadServer != nil {
		s.reloadServer.Close()
	}

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
	}
}

// processChanges serializes file change handling and coalesces bursts.
func (s *Server) processChanges(ctx context.Context, changeCh <-chan Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-changeCh:
			changes := []Change{change}
			draining := true
			for draining {
				select {
				case next := <-changeCh:
					changes = append(changes, next)
				default:
					draining = false
				}
			}
			s.handleChanges(ctx, changes)
		}
	}
}

// handleChanges handles a batch of file changes.
func (s *Server) handleChanges(ctx context.Context, changes []Change) {
	var hasContent, hasConfig, hasStatic bool
	cssPath := ""

	for _, change := range changes {
		s.logger.Debug("changed", "path", change.Path, "type", change.Type.String())
		switch change.Type {
		case ChangeContent:
			hasContent = true
		case ChangeConfig:
			hasConfig = true
		case ChangeCSS:
			if cssPath == "" {
				cssPath = change.Path
			}
		case ChangeStatic:
			hasStatic = true
		}
	}

	if hasConfig {
		if err := s.reloadConfig(); err != nil {
			s.logger.Error("config reload failed", "error", err)
			s.notifyError(err)
			return
		}
	}

	if hasContent || hasConfig {
		if err := s.Load(ctx); err != nil {
			s.logger.Error("load failed", "error", err)
			s.notifyError(err)
			return
		}
		s.clearReloadError()
		s.notifyReload()
		return
	}

	if cssPath != "" && !hasStatic {
		if s.reloadEnabled() {
			s.reloadServer.Send(ReloadMessage{Type: ReloadTypeCSS, File: cssPath})
			s.logger.Info("css reloaded", "path", cssPath)
		}
		return
	}

	s.notifyReload()
}

func (s *Server) reloadEnabled() bool {
	return s.reloadServer != nil
}

func (s *Server) notifyReload() {
	if !s.reloadEnabled() {
		return
	}

	s.reloadServer.Send(ReloadMessage{Type: ReloadTypeFull})
	clients := s.reloadServer.ClientCount()
	if s.options.OnReload != nil {
		s.options.OnReload(clients)
	}
	s.logger.Info("reloaded browsers", "clients", clients)
}

func (s *Server) notifyError(err error) {
	if !s.reloadEnabled() {
		return
	}
	s.reloadServer.Send(ReloadMessage{
		Type:  ReloadTypeError,
		Error: errors.FromError(err, "E201").FormatCompact(),
	})
}

func (s *Server) clearReloadError() {
	if !s.reloadEnabled() {
		return
	}
	s.reloadServer.Send(ReloadMessage{Type: ReloadTypeClear})
}
