package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-pageblocks/internal/logging"
	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/render"
	"github.com/goliatone/go-pageblocks/pkg/renderers/terminal"
	"github.com/goliatone/go-pageblocks/pkg/renderers/vanilla"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request names none.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchema replaces the landing page schema.
func WithSchema(schema blocks.PageSchema) Option {
	return func(o *Orchestrator) {
		o.schema = schema
		o.schemaSet = true
	}
}

// WithTheme passes fixed theme settings to every render.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *Orchestrator) {
		o.theme = cfg
	}
}

// WithThemeSelector resolves name/variant through selector before each
// render. Requests may override both.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.selector = selector
		o.themeName = name
		o.themeVariant = variant
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates store, schema, theme and renderers. Missing
// dependencies get the built-in implementations.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	schema          blocks.PageSchema
	schemaSet       bool
	theme           *theme.RendererConfig
	selector        theme.ThemeSelector
	themeName       string
	themeVariant    string
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          logging.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if !o.schemaSet {
		o.schema = blocks.DefaultPageSchema()
	}
	if o.registry != nil {
		return
	}
	o.registry = render.NewRegistry()
	html, err := vanilla.New(vanilla.WithLogger(o.logger))
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: init vanilla renderer: %w", err)
		return
	}
	o.registry.MustRegister(html)
	o.registry.MustRegister(terminal.New(terminal.WithLogger(o.logger)))
}

// Schema is the page schema used for every request.
func (o *Orchestrator) Schema() blocks.PageSchema {
	return o.schema
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Request describes one render.
type Request struct {
	// Store supplies the document. Optional when Data or Page is set.
	Store store.Store
	// Data is a raw JSON document.
	Data []byte
	// Page bypasses loading.
	Page *content.Page

	// Renderer names the renderer; empty means the default.
	Renderer string
	Options  render.RenderOptions

	// ThemeName and ThemeVariant override the selector defaults.
	ThemeName    string
	ThemeVariant string
}

// Render loads the document and renders it.
func (o *Orchestrator) Render(ctx context.Context, req Request) (render.Result, error) {
	if o.initialiseErr != nil {
		return render.Result{}, o.initialiseErr
	}
	page, err := o.page(ctx, req)
	if err != nil {
		return render.Result{}, err
	}

	name := req.Renderer
	if name == "" {
		name = o.defaultRenderer
	}
	renderer, err := o.registry.Get(name)
	if err != nil {
		return render.Result{}, fmt.Errorf("orchestrator: %w", err)
	}

	options := req.Options
	if options.Theme == nil {
		cfg, err := o.resolveTheme(ctx, req)
		if err != nil {
			return render.Result{}, err
		}
		options.Theme = cfg
	}

	result, err := renderer.Render(ctx, page, o.schema, options)
	if err != nil {
		return render.Result{}, fmt.Errorf("orchestrator: render %s: %w", renderer.Name(), err)
	}
	return result, nil
}

// Generate renders and returns only the body.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Body, nil
}

func (o *Orchestrator) page(ctx context.Context, req Request) (*content.Page, error) {
	switch {
	case req.Page != nil:
		return req.Page, nil
	case req.Data != nil:
		page, err := content.Decode(req.Data)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return page, nil
	case req.Store != nil:
		data, err := req.Store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load %s: %w", req.Store.Location(), err)
		}
		page, err := content.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %s: %w", req.Store.Location(), err)
		}
		return page, nil
	default:
		return nil, errors.New("orchestrator: request has no document")
	}
}

func (o *Orchestrator) resolveTheme(ctx context.Context, req Request) (*theme.RendererConfig, error) {
	if o.selector == nil {
		return o.theme, nil
	}
	name := req.ThemeName
	if name == "" {
		name = o.themeName
	}
	variant := req.ThemeVariant
	if variant == "" {
		variant = o.themeVariant
	}
	cfg, err := render.SelectTheme(ctx, o.selector, name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	if cfg == nil {
		return o.theme, nil
	}
	return cfg, nil
}
