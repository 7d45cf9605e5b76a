package terminal

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/render"
)

// Block is the view of a visited node handed to a Handler.
type Block struct {
	Node     render.Node
	pass     *pass
	children []render.Region
}

// Editing reports whether block paths are annotated.
func (b *Block) Editing() bool {
	return b.pass.options.Editing()
}

// String returns the trimmed string at the block-relative path rel.
func (b *Block) String(rel string) string {
	return strings.TrimSpace(b.Node.Block.String(rel))
}

// List renders the nested block list name and records its regions.
func (b *Block) List(name string) (string, error) {
	markup, regions, err := b.pass.list(b.Node.Children(name))
	if err != nil {
		return "", err
	}
	b.children = append(b.children, regions...)
	return markup, nil
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

func heroHandler(b *Block) (string, error) {
	var out strings.Builder
	if headline := b.String("headline"); headline != "" {
		fmt.Fprintf(&out, "## %s\n\n", headline)
	}
	if subtext := b.String("subtext"); subtext != "" {
		fmt.Fprintf(&out, "%s\n\n", subtext)
	}
	return out.String(), nil
}

func paragraphHandler(b *Block) (string, error) {
	text := b.String("text")
	if text == "" {
		return "", nil
	}
	return text + "\n\n", nil
}

func imagesHandler(b *Block) (string, error) {
	var sides []string
	for _, side := range []string{"left", "right"} {
		src := b.String(side + ".src")
		if src == "" {
			continue
		}
		sides = append(sides, fmt.Sprintf("![%s](%s)", b.String(side+".alt"), src))
	}
	if len(sides) == 0 {
		return "", nil
	}
	return strings.Join(sides, " ") + "\n\n", nil
}

func featuresHandler(b *Block) (string, error) {
	return b.List("features")
}

func featureHandler(b *Block) (string, error) {
	var out strings.Builder
	if heading := b.String("heading"); heading != "" {
		fmt.Fprintf(&out, "### %s\n\n", heading)
	}
	if supporting := b.String("supporting_copy"); supporting != "" {
		fmt.Fprintf(&out, "%s\n\n", supporting)
	}
	return out.String(), nil
}
