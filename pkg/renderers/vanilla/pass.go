package vanilla

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/fields"
	"github.com/goliatone/go-pageblocks/pkg/render"
	"github.com/goliatone/go-pageblocks/pkg/renderers/vanilla/components"
)

// errNoHandler reports a registered kind without an HTML handler.
var errNoHandler = errors.New("vanilla: no handler for kind")

// pass holds the state of one Render call.
type pass struct {
	ctx         context.Context
	r           *Renderer
	page        *content.Page
	options     render.RenderOptions
	partials    map[string]string
	diagnostics []render.Diagnostic
}

func newPass(ctx context.Context, r *Renderer, page *content.Page, options render.RenderOptions) *pass {
	p := &pass{ctx: ctx, r: r, page: page, options: options}
	if options.Theme != nil {
		p.partials = options.Theme.Partials
	}
	return p
}

func (p *pass) editing() bool {
	return p.options.Editing()
}

func (p *pass) componentData() components.ComponentData {
	return components.ComponentData{Template: p.r.templates, Partials: p.partials}
}

func (p *pass) template(name string) string {
	if candidate := strings.TrimSpace(p.partials["pageblocks."+name]); candidate != "" {
		return candidate
	}
	return "templates/" + name + ".tmpl"
}

// list renders the nodes of one block list. In edit mode the list ends with
// an add control offering the kinds of its registry.
func (p *pass) list(nodes []render.Node, list content.Path, scope *blocks.Registry) (string, []render.Region, error) {
	var b strings.Builder
	regions := make([]render.Region, 0, len(nodes))
	for _, node := range nodes {
		if err := p.ctx.Err(); err != nil {
			return "", nil, err
		}
		markup, region, ok, err := p.block(node, len(nodes))
		if err != nil {
			return "", nil, err
		}
		if !ok {
			continue
		}
		b.WriteString(markup)
		regions = append(regions, region)
	}

	if p.editing() && scope != nil {
		add, err := p.addControl(list, len(nodes), scope)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(add)
	}
	return b.String(), regions, nil
}

func (p *pass) block(node render.Node, siblings int) (string, render.Region, bool, error) {
	region := render.NewRegion(node)

	var body string
	var cause error
	if node.Renderable() {
		handler, ok := p.r.handlers[node.Block.Kind]
		if !ok {
			cause = fmt.Errorf("%w %q at %s", errNoHandler, node.Block.Kind, node.Position.Path.String())
			p.diagnostics = append(p.diagnostics, render.Diagnostic{
				Path:    node.Position.Path.String(),
				Kind:    node.Block.Kind,
				Message: cause.Error(),
			})
		} else {
			view := &Block{Node: node, pass: p}
			rendered, err := handler(view)
			if err != nil {
				return "", render.Region{}, false, fmt.Errorf("vanilla renderer: %s at %s: %w", node.Block.Kind, node.Position.Path.String(), err)
			}
			body = rendered
			region.Children = view.children
		}
	} else {
		cause = node.Err
	}

	if cause != nil {
		region.Degraded = true
		if !p.editing() {
			return "", region, false, nil
		}
		degraded, err := p.r.templates.RenderTemplate(p.template("degraded"), map[string]any{
			"kind":    string(node.Block.Kind),
			"path":    node.Position.Path.String(),
			"message": cause.Error(),
		})
		if err != nil {
			return "", render.Region{}, false, fmt.Errorf("vanilla renderer: degraded block: %w", err)
		}
		body = degraded
	}

	var settings strings.Builder
	if p.editing() && node.Template != nil && cause == nil {
		for _, field := range node.Template.Settings() {
			path := node.Position.Path.JoinDotted(field.Name)
			control := components.NewControl(field, path.String(), p.page.String(path))
			if field.Widget == fields.WidgetImage {
				control.Preview = field.Preview(p.page, node.Position.Field(field.Name))
				control.UploadDir = field.Dir()
			}
			markup, err := p.r.components.Render(control, p.componentData())
			if err != nil {
				return "", render.Region{}, false, fmt.Errorf("vanilla renderer: %w", err)
			}
			settings.WriteString(markup)
		}
	}

	label := region.Label
	if label == "" {
		label = string(node.Block.Kind)
	}
	idx := node.Position.Index
	wrapped, err := p.r.templates.RenderTemplate(p.template("block"), map[string]any{
		"editing":  p.editing(),
		"degraded": region.Degraded,
		"kind":     string(node.Block.Kind),
		"label":    label,
		"path":     node.Position.Path.String(),
		"list":     node.Position.List.String(),
		"index":    idx,
		"canUp":    idx > 0,
		"up":       idx - 1,
		"canDown":  idx < siblings-1,
		"down":     idx + 1,
		"settings": settings.String(),
		"body":     body,
	})
	if err != nil {
		return "", render.Region{}, false, fmt.Errorf("vanilla renderer: wrap block: %w", err)
	}
	region.Content = wrapped
	return wrapped, region, true, nil
}

type kindOption struct {
	Kind  string
	Label string
}

func (p *pass) addControl(list content.Path, index int, scope *blocks.Registry) (string, error) {
	templates := scope.Templates()
	kinds := make([]kindOption, 0, len(templates))
	for _, tmpl := range templates {
		kinds = append(kinds, kindOption{Kind: string(tmpl.Kind), Label: tmpl.Label})
	}
	out, err := p.r.templates.RenderTemplate(p.template("add"), map[string]any{
		"list":  list.String(),
		"index": index,
		"kinds": kinds,
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: add control: %w", err)
	}
	return out, nil
}

type themeView struct {
	Name    string
	Variant string
	Vars    map[string]string
}

func (p *pass) shell(schema blocks.PageSchema, body string) (string, error) {
	opts := p.options
	stylesheet := opts.AssetPrefix + "/" + StylesheetName
	editor := opts.AssetPrefix + "/" + EditorScriptName
	var view themeView
	if cfg := opts.Theme; cfg != nil {
		view = themeView{Name: cfg.Theme, Variant: cfg.Variant, Vars: cfg.CSSVars}
		if cfg.AssetURL != nil {
			if url := cfg.AssetURL("stylesheet"); url != "" {
				stylesheet = url
			}
			if url := cfg.AssetURL("editor"); url != "" {
				editor = url
			}
		}
	}

	var toolbar string
	if p.editing() {
		var settings strings.Builder
		for _, field := range schema.Fields {
			path, err := field.Path()
			if err != nil {
				return "", fmt.Errorf("vanilla renderer: %w", err)
			}
			markup, err := p.r.components.Render(components.NewControl(field, path.String(), p.page.String(path)), p.componentData())
			if err != nil {
				return "", fmt.Errorf("vanilla renderer: %w", err)
			}
			settings.WriteString(markup)
		}
		rendered, err := p.r.templates.RenderTemplate(p.template("toolbar"), map[string]any{
			"settings": settings.String(),
			"notices":  opts.Notices,
		})
		if err != nil {
			return "", fmt.Errorf("vanilla renderer: toolbar: %w", err)
		}
		toolbar = rendered
	}

	out, err := p.r.templates.RenderTemplate(p.template("page"), map[string]any{
		"title":       opts.Title,
		"description": p.page.Subtext(),
		"editing":     p.editing(),
		"theme":       view,
		"stylesheet":  stylesheet,
		"editor":      editor,
		"toolbar":     toolbar,
		"body":        body,
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: page shell: %w", err)
	}
	return out, nil
}

// Binding is the template view of one field of a block.
type Binding struct {
	Name      string
	Path      string
	Label     string
	Widget    fields.Widget
	Value     string
	Preview   string
	UploadDir string
	// Attrs holds the escaped data-pb-* attributes of an inline field in edit
	// mode, with a leading space. It is empty in view mode.
	Attrs string
}

func inlineAttrs(field fields.Field, path, uploadDir string) string {
	var b strings.Builder
	attr := func(name, value string) {
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(value))
		b.WriteString(`"`)
	}
	attr("data-pb-field", path)
	attr("data-pb-widget", string(field.Widget))
	attr("data-pb-label", field.Label)
	switch field.Widget {
	case fields.WidgetImage:
		attr("data-pb-upload-dir", uploadDir)
	default:
		attr("contenteditable", "true")
		attr("spellcheck", "true")
	}
	return b.String()
}
