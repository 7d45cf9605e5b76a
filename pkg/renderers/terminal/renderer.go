package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/goliatone/go-pageblocks/internal/logging"
	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/render"
)

// DefaultWidth is the wrap width when none is configured.
const DefaultWidth = 80

// Handler turns one block into markdown.
type Handler func(b *Block) (string, error)

type Option func(*Renderer)

// WithStyle selects a glamour standard style ("dark", "light", "notty",
// ...). "auto" detects the terminal background.
func WithStyle(style string) Option {
	return func(r *Renderer) {
		if style = strings.TrimSpace(style); style != "" {
			r.style = style
		}
	}
}

// WithWidth sets the word wrap width.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// WithHandler overrides the handler for one kind.
func WithHandler(kind content.Kind, handler Handler) Option {
	return func(r *Renderer) {
		if handler != nil {
			r.handlers[kind] = handler
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer renders pages for the terminal.
type Renderer struct {
	style    string
	width    int
	handlers map[content.Kind]Handler
	logger   *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a renderer. The default style is "auto".
func New(options ...Option) *Renderer {
	r := &Renderer{
		style:    "auto",
		width:    DefaultWidth,
		handlers: defaultHandlers(),
		logger:   logging.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "terminal"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render styles the page markdown with glamour.
func (r *Renderer) Render(ctx context.Context, page *content.Page, schema blocks.PageSchema, options render.RenderOptions) (render.Result, error) {
	result, doc, err := r.Markdown(ctx, page, schema, options)
	if err != nil {
		return render.Result{}, err
	}

	styled, err := r.styled(doc)
	if err != nil {
		return render.Result{}, err
	}
	result.Body = []byte(styled)
	return result, nil
}

// Markdown builds the unstyled markdown document of page. The result carries
// regions and diagnostics; its Body is the markdown.
func (r *Renderer) Markdown(ctx context.Context, page *content.Page, schema blocks.PageSchema, options render.RenderOptions) (render.Result, string, error) {
	options = options.WithDefaults()
	nodes, err := render.Walk(page, schema)
	if err != nil {
		return render.Result{}, "", fmt.Errorf("terminal renderer: %w", err)
	}

	p := &pass{ctx: ctx, r: r, page: page, options: options}
	body, regions, err := p.list(nodes)
	if err != nil {
		return render.Result{}, "", err
	}

	var doc strings.Builder
	if !options.Fragment {
		if headline := strings.TrimSpace(page.Headline()); headline != "" {
			fmt.Fprintf(&doc, "# %s\n\n", headline)
		}
		if subtext := strings.TrimSpace(page.Subtext()); subtext != "" {
			fmt.Fprintf(&doc, "_%s_\n\n", subtext)
		}
		if options.Editing() {
			doc.WriteString("---\n\n")
		}
	}
	doc.WriteString(body)

	result := render.Result{
		Body:        []byte(doc.String()),
		Regions:     regions,
		Diagnostics: append(render.Diagnose(nodes), p.diagnostics...),
	}
	for _, diag := range result.Diagnostics {
		r.logger.Warn("block not rendered", "path", diag.Path, "kind", diag.Kind, "error", diag.Message)
	}
	return result, doc.String(), nil
}

func (r *Renderer) styled(doc string) (string, error) {
	styleOption := glamour.WithStandardStyle(r.style)
	if r.style == "auto" {
		styleOption = glamour.WithAutoStyle()
	}
	tr, err := glamour.NewTermRenderer(styleOption, glamour.WithWordWrap(r.width))
	if err != nil {
		return "", fmt.Errorf("terminal renderer: configure glamour: %w", err)
	}
	out, err := tr.Render(doc)
	if err != nil {
		return "", fmt.Errorf("terminal renderer: %w", err)
	}
	return out, nil
}

type pass struct {
	ctx         context.Context
	r           *Renderer
	page        *content.Page
	options     render.RenderOptions
	diagnostics []render.Diagnostic
}

func (p *pass) list(nodes []render.Node) (string, []render.Region, error) {
	var b strings.Builder
	regions := make([]render.Region, 0, len(nodes))
	for _, node := range nodes {
		if err := p.ctx.Err(); err != nil {
			return "", nil, err
		}
		region := render.NewRegion(node)

		var cause error
		var markup string
		if node.Renderable() {
			handler, ok := p.r.handlers[node.Block.Kind]
			if ok {
				view := &Block{Node: node, pass: p}
				out, err := handler(view)
				if err != nil {
					return "", nil, fmt.Errorf("terminal renderer: %s at %s: %w", node.Block.Kind, node.Position.Path.String(), err)
				}
				markup = out
				region.Children = view.children
			} else {
				cause = fmt.Errorf("terminal renderer: no handler for kind %q at %s", node.Block.Kind, node.Position.Path.String())
				p.diagnostics = append(p.diagnostics, render.Diagnostic{Path: node.Position.Path.String(), Kind: node.Block.Kind, Message: cause.Error()})
			}
		} else {
			cause = node.Err
		}

		if cause != nil {
			region.Degraded = true
			if !p.options.Editing() {
				continue
			}
			markup = fmt.Sprintf("> **%s** cannot be rendered: %s\n\n", node.Block.Kind, cause.Error())
		}

		if p.options.Editing() {
			label := region.Label
			if label == "" {
				label = string(node.Block.Kind)
			}
			markup = fmt.Sprintf("`%s` **%s**\n\n", node.Position.Path.String(), label) + markup
		}
		region.Content = markup
		b.WriteString(markup)
		regions = append(regions, region)
	}
	return b.String(), regions, nil
}
