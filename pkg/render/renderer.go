package render

import (
	"bytes"
	"context"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
)

// Renderer produces a representation of a page (HTML, terminal markdown).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page *content.Page, schema blocks.PageSchema, options RenderOptions) (Result, error)
}

// Region describes one rendered block.
type Region struct {
	Kind  content.Kind `json:"kind"`
	Label string       `json:"label,omitempty"`
	Path  string       `json:"path"`
	Index int          `json:"index"`
	// Content is the renderer output for the block alone.
	Content  string   `json:"content,omitempty"`
	Degraded bool     `json:"degraded,omitempty"`
	Children []Region `json:"children,omitempty"`
}

// Result is the output of one render.
type Result struct {
	Body        []byte
	Regions     []Region
	Diagnostics []Diagnostic
}

// String returns the body.
func (r Result) String() string {
	return string(r.Body)
}

// Count returns how many regions of kind were produced, nested ones included.
func (r Result) Count(kind content.Kind) int {
	var count func([]Region) int
	count = func(list []Region) int {
		n := 0
		for _, region := range list {
			if region.Kind == kind {
				n++
			}
			n += count(region.Children)
		}
		return n
	}
	return count(r.Regions)
}

// NewRegion seeds a region from a visited node.
func NewRegion(node Node) Region {
	region := Region{
		Kind:     node.Block.Kind,
		Path:     node.Position.Path.String(),
		Index:    node.Position.Index,
		Degraded: !node.Renderable(),
	}
	if node.Template != nil {
		region.Label = node.Template.Label
	}
	return region
}

// Contains reports whether the rendered body contains text.
func (r Result) Contains(text string) bool {
	return bytes.Contains(r.Body, []byte(text))
}
