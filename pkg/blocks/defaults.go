package blocks

import (
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/fields"
)

// Hero palette and option sets.
var (
	HeroBackgroundColors = []string{"#051e26", "#f2dfc6", "#cfdcc8", "#ebbbbb", "#8a1414"}
	HeroTextColors       = []string{"white", "black"}
	HeroAlignments       = []string{"center", "left"}
)

const paragraphCopy = "Take root and flourish quis nostrum exercitationem ullam corporis suscipit laboriosam culture Quis autem vel eum iure reprehenderit qui in ea voluptate velit esse quam nihil molestiae consequatur descended from astronomers encyclopaedia galactica? Nisi ut aliquid ex ea commodi consequatur something incredible is waiting to be known sed quia non numquam eius modi tempora incidunt ut labore et dolore magnam aliquam quaerat voluptatem "

// HeroTemplate is the full-width headline block.
func HeroTemplate() Template {
	return Template{
		Kind:  content.KindHero,
		Label: "Hero",
		DefaultItem: map[string]any{
			"headline":         "Suspended in a Sunbeam",
			"subtext":          "Dispassionate extraterrestrial observer",
			"background_color": "#051e26",
			"text_color":       "white",
			"align":            "center",
		},
		Fields: []fields.Field{
			{Name: "headline", Widget: fields.WidgetTextarea, Inline: true},
			{Name: "subtext", Widget: fields.WidgetTextarea, Inline: true},
			{Name: "background_color", Label: "Background Color", Widget: fields.WidgetColor, Options: HeroBackgroundColors},
			{Name: "text_color", Label: "Text Color", Widget: fields.WidgetSelect, Options: HeroTextColors},
			{Name: "align", Label: "Alignment", Widget: fields.WidgetSelect, Options: HeroAlignments},
		},
	}
}

// ParagraphTemplate is a single block of narrow copy.
func ParagraphTemplate() Template {
	return Template{
		Kind:        content.KindParagraph,
		Label:       "Paragraph",
		DefaultItem: map[string]any{"text": paragraphCopy},
		Fields: []fields.Field{
			{Name: "text", Widget: fields.WidgetTextarea, Inline: true},
		},
	}
}

// ImagesTemplate is the two-image diptych.
func ImagesTemplate() Template {
	return Template{
		Kind:  content.KindImages,
		Label: "Image Diptych",
		DefaultItem: map[string]any{
			"left": map[string]any{
				"src": "/ivan-bandura-unsplash-square.jpg",
				"alt": "ocean",
			},
			"right": map[string]any{
				"src": "/martin-sanchez-unsplash-square.jpg",
				"alt": "dunes",
			},
		},
		Fields: []fields.Field{
			imageField("left.src", "Left-Hand Image"),
			{Name: "left.alt", Label: "Left-Hand Image Alt Text", Widget: fields.WidgetText},
			imageField("right.src", "Right-Hand Image"),
			{Name: "right.alt", Label: "Right-Hand Image Alt Text", Widget: fields.WidgetText},
		},
	}
}

func imageField(name, label string) fields.Field {
	return fields.Field{
		Name:       name,
		Label:      label,
		Widget:     fields.WidgetImage,
		Inline:     true,
		Parse:      fields.RootPath,
		UploadDir:  func() string { return "/" },
		PreviewSrc: fields.CurrentValue,
	}
}

// FeatureTemplate is one item of a feature list.
func FeatureTemplate() Template {
	return Template{
		Kind:  content.KindFeature,
		Label: "Feature",
		DefaultItem: map[string]any{
			"heading":         "Marie Skłodowska Curie",
			"supporting_copy": "Rich in mystery muse about vastness is bearable only through love Ut enim ad minima veniam at the edge of forever are creatures of the cosmos. ",
		},
		Fields: []fields.Field{
			{Name: "heading", Widget: fields.WidgetTextarea, Inline: true},
			{Name: "supporting_copy", Widget: fields.WidgetTextarea, Inline: true},
		},
	}
}

// FeaturesTemplate is a horizontal list of feature items drawn from features.
func FeaturesTemplate(features *Registry) Template {
	defaults := make([]any, 0, 3)
	for _, heading := range []string{"heading 1", "heading 2", "heading 3"} {
		defaults = append(defaults, map[string]any{
			content.KindKey:   string(content.KindFeature),
			"heading":         heading,
			"supporting_copy": "supporting copy",
		})
	}
	return Template{
		Kind:        content.KindFeatures,
		Label:       "Feature List",
		DefaultItem: map[string]any{"features": defaults},
		Fields: []fields.Field{
			{Name: "features", Label: "Features", Widget: fields.WidgetBlocks},
		},
		Lists: map[string]*Registry{"features": features},
	}
}

// NewFeatureRegistry returns the registry for feature list items.
func NewFeatureRegistry(options ...Option) *Registry {
	reg := NewRegistry(append([]Option{WithName("features")}, options...)...)
	reg.MustRegister(FeatureTemplate())
	return reg
}

// NewHomeRegistry returns the landing page block registry.
func NewHomeRegistry(options ...Option) *Registry {
	reg := NewRegistry(append([]Option{WithName("home")}, options...)...)
	reg.MustRegister(HeroTemplate())
	reg.MustRegister(ParagraphTemplate())
	reg.MustRegister(ImagesTemplate())
	reg.MustRegister(FeaturesTemplate(NewFeatureRegistry(options...)))
	return reg
}

// PageFields are the page-level fields of the landing page.
func PageFields() []fields.Field {
	return fields.NewWidgetRegistry().Decorate([]fields.Field{
		{Name: content.HeadlineKey, Widget: fields.WidgetText, Inline: true},
		{Name: content.SubtextKey, Widget: fields.WidgetTextarea, Inline: true},
	})
}

// DefaultPageSchema returns the landing page schema.
func DefaultPageSchema() PageSchema {
	return PageSchema{
		Fields: PageFields(),
		Blocks: NewHomeRegistry(),
	}
}
