package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/goliatone/go-pageblocks/internal/logging"
	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/render"
	rendertemplate "github.com/goliatone/go-pageblocks/pkg/render/template"
	"github.com/goliatone/go-pageblocks/pkg/render/template/pongo"
	"github.com/goliatone/go-pageblocks/pkg/renderers/vanilla/components"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	handlers         map[content.Kind]Handler
	logger           *slog.Logger
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponents replaces the settings control registry.
func WithComponents(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithHandler overrides the handler for one kind.
func WithHandler(kind content.Kind, handler Handler) Option {
	return func(cfg *config) {
		if handler != nil {
			cfg.handlers[kind] = handler
		}
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer renders pages as HTML documents.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	components *components.Registry
	handlers   map[content.Kind]Handler
	markdown   *markdown
	logger     *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		handlers:   defaultHandlers(),
		logger:     logging.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		built, err := pongo.New(pongo.WithFS(cfg.templateFS), pongo.WithExtension(".tmpl"))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure templates: %w", err)
		}
		engine = built
	}

	return &Renderer{
		templates:  engine,
		components: cfg.components,
		handlers:   cfg.handlers,
		markdown:   newMarkdown(),
		logger:     cfg.logger,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render walks the page and renders every block through its kind handler.
// Blocks that cannot be rendered are left out in view mode and shown as a
// degraded placeholder in edit mode; either way they are reported in the
// result diagnostics.
func (r *Renderer) Render(ctx context.Context, page *content.Page, schema blocks.PageSchema, options render.RenderOptions) (render.Result, error) {
	if r.templates == nil {
		return render.Result{}, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	options = options.WithDefaults()

	nodes, err := render.Walk(page, schema)
	if err != nil {
		return render.Result{}, fmt.Errorf("vanilla renderer: %w", err)
	}

	p := newPass(ctx, r, page, options)
	body, regions, err := p.list(nodes, content.BlocksPath, schema.Blocks)
	if err != nil {
		return render.Result{}, err
	}

	result := render.Result{
		Regions:     regions,
		Diagnostics: append(render.Diagnose(nodes), p.diagnostics...),
	}
	for _, diag := range result.Diagnostics {
		r.logger.Warn("block not rendered", "path", diag.Path, "kind", diag.Kind, "error", diag.Message)
	}

	if options.Fragment {
		result.Body = []byte(body)
		return result, nil
	}

	shell, err := p.shell(schema, body)
	if err != nil {
		return render.Result{}, err
	}
	result.Body = []byte(shell)
	return result, nil
}
