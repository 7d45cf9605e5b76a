package vanilla

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/fields"
	"github.com/goliatone/go-pageblocks/pkg/render"
)

// Handler renders the body of one block.
type Handler func(b *Block) (string, error)

// Block is the view of a visited node handed to a Handler.
type Block struct {
	Node     render.Node
	pass     *pass
	children []render.Region
}

// Editing reports whether edit affordances are being rendered.
func (b *Block) Editing() bool {
	return b.pass.editing()
}

// Decode fills a typed view of the block data.
func (b *Block) Decode(out any) error {
	return b.Node.Block.Decode(out)
}

// Field returns the binding of the declared field name. Undeclared names
// produce a plain binding with no edit attributes.
func (b *Block) Field(name string) Binding {
	path := b.Node.Position.Path.JoinDotted(name)
	binding := Binding{
		Name:  name,
		Path:  path.String(),
		Value: b.Node.Block.String(name),
	}
	if b.Node.Template == nil {
		return binding
	}
	rel, err := content.ParsePath(name)
	if err != nil {
		return binding
	}
	field, ok := b.Node.Template.Field(rel)
	if !ok {
		return binding
	}

	binding.Label = field.Label
	binding.Widget = field.Widget
	binding.Preview = binding.Value
	if field.Widget == fields.WidgetImage {
		binding.Preview = field.Preview(b.pass.page, b.Node.Position.Field(name))
		binding.UploadDir = field.Dir()
	}
	if b.Editing() && field.Inline {
		binding.Attrs = inlineAttrs(field, binding.Path, binding.UploadDir)
	}
	return binding
}

// Markdown renders authored copy to sanitised HTML.
func (b *Block) Markdown(text string) (string, error) {
	return b.pass.r.markdown.HTML(text)
}

// List renders the nested block list name. The child regions are attached to
// the block's region.
func (b *Block) List(name string) (string, error) {
	scope, _ := b.Node.Template.List(name)
	markup, regions, err := b.pass.list(b.Node.Children(name), b.Node.Position.Path.Join(name), scope)
	if err != nil {
		return "", err
	}
	b.children = append(b.children, regions...)
	return markup, nil
}

// Render executes a block template with data. `editing`, `path` and `kind`
// are always set.
func (b *Block) Render(name string, data map[string]any) (string, error) {
	payload := make(map[string]any, len(data)+3)
	for key, value := range data {
		payload[key] = value
	}
	payload["editing"] = b.Editing()
	payload["path"] = b.Node.Position.Path.String()
	payload["kind"] = string(b.Node.Block.Kind)
	return b.pass.r.templates.RenderTemplate(b.pass.template("blocks/"+name), payload)
}

func defaultHandlers() map[content.Kind]Handler {
	return map[content.Kind]Handler{
		content.KindHero:      heroHandler,
		content.KindParagraph: paragraphHandler,
		content.KindImages:    imagesHandler,
		content.KindFeatures:  featuresHandler,
		content.KindFeature:   featureHandler,
	}
}

type heroView struct {
	Headline        string `json:"headline"`
	Subtext         string `json:"subtext"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	Align           string `json:"align"`
}

// Style returns the inline style of the hero banner.
func (v heroView) Style() string {
	color := v.TextColor
	if color == "" {
		color = "#000"
	}
	background := v.BackgroundColor
	if background == "" {
		background = "aliceblue"
	}
	justify := v.Align
	if v.Align == "left" {
		justify = "start"
	}

	parts := []string{"color: " + color, "background-color: " + background}
	if v.Align != "" {
		parts = append(parts, "text-align: "+v.Align, "justify-content: "+justify)
	}
	return strings.Join(parts, "; ") + ";"
}

// allowed clears style values outside their field's option set so stored
// text never reaches the inline style.
func (v heroView) allowed(tmpl blocks.Template) heroView {
	check := func(name, value string) string {
		field, ok := tmpl.Field(content.Path{name})
		if !ok || !field.Allows(value) {
			return ""
		}
		return value
	}
	v.BackgroundColor = check("background_color", v.BackgroundColor)
	v.TextColor = check("text_color", v.TextColor)
	v.Align = check("align", v.Align)
	return v
}

func heroHandler(b *Block) (string, error) {
	var view heroView
	if err := b.Decode(&view); err != nil {
		return "", err
	}
	view = view.allowed(*b.Node.Template)
	return b.Render("hero", map[string]any{
		"style":    view.Style(),
		"headline": b.Field("headline"),
		"subtext":  b.Field("subtext"),
	})
}

func paragraphHandler(b *Block) (string, error) {
	text := b.Field("text")
	data := map[string]any{"text": text}
	if !b.Editing() {
		rendered, err := b.Markdown(text.Value)
		if err != nil {
			return "", err
		}
		data["html"] = rendered
	}
	return b.Render("paragraph", data)
}

type imageSide struct {
	Src Binding
	Alt Binding
}

func imagesHandler(b *Block) (string, error) {
	return b.Render("images", map[string]any{
		"left":  imageSide{Src: b.Field("left.src"), Alt: b.Field("left.alt")},
		"right": imageSide{Src: b.Field("right.src"), Alt: b.Field("right.alt")},
	})
}

// FeatureColumns is the number of columns of a feature list.
const FeatureColumns = 3

func featuresHandler(b *Block) (string, error) {
	if b.Node.Template == nil {
		return "", fmt.Errorf("features block has no template")
	}
	items, err := b.List("features")
	if err != nil {
		return "", err
	}
	return b.Render("features", map[string]any{
		"list":    b.Node.Position.Path.Join("features").String(),
		"columns": FeatureColumns,
		"items":   items,
	})
}

func featureHandler(b *Block) (string, error) {
	return b.Render("feature", map[string]any{
		"heading":         b.Field("heading"),
		"supporting_copy": b.Field("supporting_copy"),
	})
}
