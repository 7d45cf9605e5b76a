package render

import (
	"fmt"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/fields"
)

// Position locates a block: the list it lives in, its index there and its
// own path (`List.Index`).
type Position struct {
	List  content.Path
	Index int
	Path  content.Path
}

// Field returns the hook position of the field rel inside the block.
func (p Position) Field(rel string) fields.Position {
	return fields.Position{Block: p.Path.Join(), Index: p.Index, Path: p.Path.JoinDotted(rel)}
}

// Node is one visited block.
type Node struct {
	Block    content.Block
	Position Position
	// Template is nil when the kind did not resolve.
	Template *blocks.Template
	// Scope is the registry governing the block's list.
	Scope *blocks.Registry
	// Lists holds the visited children of each nested block list, keyed by
	// field name.
	Lists map[string][]Node
	Err   error
}

// Renderable reports whether the node resolved to a template.
func (n Node) Renderable() bool {
	return n.Err == nil && n.Template != nil
}

// Children returns the visited items of the nested list name.
func (n Node) Children(name string) []Node {
	return n.Lists[name]
}

// Walk visits the page's root block list.
func Walk(page *content.Page, schema blocks.PageSchema) ([]Node, error) {
	if page == nil {
		return nil, fmt.Errorf("render: page is nil")
	}
	if schema.Blocks == nil {
		return nil, fmt.Errorf("%w: page schema has no block registry", blocks.ErrConfig)
	}
	return walkList(page, content.BlocksPath, schema.Blocks)
}

func walkList(page *content.Page, list content.Path, scope *blocks.Registry) ([]Node, error) {
	views, err := page.Blocks(list)
	if err != nil {
		return nil, fmt.Errorf("render: %s: %w", list.String(), err)
	}

	nodes := make([]Node, 0, len(views))
	for _, view := range views {
		node := Node{
			Block: view,
			Position: Position{
				List:  view.List,
				Index: view.Index,
				Path:  view.Path(),
			},
			Scope: scope,
		}

		tmpl, ok := scope.Resolve(view.Kind)
		if !ok {
			node.Err = fmt.Errorf("%w: %q at %s (registry %s)", blocks.ErrUnknownKind, view.Kind, node.Position.Path.String(), scope.Name())
			nodes = append(nodes, node)
			continue
		}
		node.Template = &tmpl

		for name, nested := range tmpl.Lists {
			children, err := walkList(page, node.Position.Path.Join(name), nested)
			if err != nil {
				node.Err = err
				break
			}
			if node.Lists == nil {
				node.Lists = make(map[string][]Node, len(tmpl.Lists))
			}
			node.Lists[name] = children
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Diagnostic reports a block that could not be rendered.
type Diagnostic struct {
	Path    string       `json:"path"`
	Kind    content.Kind `json:"kind"`
	Message string       `json:"message"`
}

// Diagnose collects the errors of every node in the tree, in walk order.
func Diagnose(nodes []Node) []Diagnostic {
	var out []Diagnostic
	var visit func([]Node)
	visit = func(list []Node) {
		for _, node := range list {
			if node.Err != nil {
				out = append(out, Diagnostic{
					Path:    node.Position.Path.String(),
					Kind:    node.Block.Kind,
					Message: node.Err.Error(),
				})
			}
			if node.Template == nil {
				continue
			}
			for _, field := range node.Template.Fields {
				if field.Widget == fields.WidgetBlocks {
					visit(node.Lists[field.Name])
				}
			}
		}
	}
	visit(nodes)
	return out
}
