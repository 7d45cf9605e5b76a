package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-pageblocks/internal/logging"
	"github.com/goliatone/go-pageblocks/pkg/render"
	"github.com/goliatone/go-pageblocks/pkg/renderers/vanilla"
	"github.com/goliatone/go-pageblocks/pkg/session"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

// MaxUploadBytes caps multipart uploads.
const MaxUploadBytes = 32 << 20

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer replaces the HTML renderer.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithAssets sets where uploads are written.
func WithAssets(assets *store.AssetDir) Option {
	return func(s *Server) {
		s.assets = assets
	}
}

// WithStatic serves files for paths no route claims, typically the site root
// holding uploaded images.
func WithStatic(files fs.FS) Option {
	return func(s *Server) {
		s.static = files
	}
}

func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// WithRegistry registers the host metrics on reg instead of a private
// registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// Server hosts one session.
type Server struct {
	mu       sync.Mutex
	session  *session.Session
	renderer render.Renderer
	assets   *store.AssetDir
	static   fs.FS
	theme    *theme.RendererConfig
	title    string
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
	router   chi.Router
}

// New builds the host for sess.
func New(sess *session.Session, options ...Option) (*Server, error) {
	if sess == nil {
		return nil, fmt.Errorf("server: session is nil")
	}
	s := &Server{session: sess, logger: logging.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.renderer == nil {
		renderer, err := vanilla.New(vanilla.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.renderer = renderer
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.page(render.ModeEdit))
	r.Get("/preview", s.page(render.ModeView))
	r.Route("/api", func(r chi.Router) {
		r.Get("/content", s.content)
		r.Get("/schema", s.schema)
		r.Get("/alerts", s.alerts)
		r.Post("/fields", s.setField)
		r.Post("/blocks", s.addBlock)
		r.Post("/blocks/remove", s.removeBlock)
		r.Post("/blocks/move", s.moveBlock)
		r.Post("/uploads", s.upload)
		r.Post("/submit", s.submit)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(vanilla.AssetsFS()))))
	if s.static != nil {
		r.NotFound(http.FileServer(http.FS(s.static)).ServeHTTP)
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ContentChanged reloads a clean session when the stored document changed
// outside the host. A dirty session is left alone.
func (s *Server) ContentChanged(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.session.Changed(ctx)
	if err != nil {
		s.logger.Warn("content check failed", "error", err)
		s.metrics.reloads.WithLabelValues("error").Inc()
		return
	}
	if !changed {
		s.metrics.reloads.WithLabelValues("unchanged").Inc()
		return
	}
	if s.session.Dirty() {
		s.logger.Warn("content changed on disk while editing; keeping working copy", "store", s.session.Location())
		s.metrics.reloads.WithLabelValues("kept").Inc()
		return
	}
	if err := s.session.Reload(ctx); err != nil {
		s.logger.Error("reload failed", "error", err)
		s.metrics.reloads.WithLabelValues("error").Inc()
		return
	}
	s.metrics.reloads.WithLabelValues("reloaded").Inc()
}
