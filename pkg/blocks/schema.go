package blocks

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/fields"
)

// PageSchema describes a whole page: its own fields and the registry for the
// root block list.
type PageSchema struct {
	Fields []fields.Field
	Blocks *Registry
}

// Binding is the result of resolving a dotted document path to a field.
type Binding struct {
	Field    fields.Field
	Position fields.Position
	// Template and Block are nil for page-level fields.
	Template *Template
	Block    *content.Block
}

// PageField looks a page-level field up by name.
func (s PageSchema) PageField(name string) (fields.Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return fields.Field{}, false
}

// Bind resolves path against the page, descending through nested lists.
func (s PageSchema) Bind(page *content.Page, path content.Path) (Binding, error) {
	if len(path) == 0 {
		return Binding{}, fmt.Errorf("%w: empty path", ErrUnknownField)
	}
	if path[0] != content.BlocksKey {
		field, ok := s.PageField(path.String())
		if !ok {
			return Binding{}, fmt.Errorf("%w: %q", ErrUnknownField, path.String())
		}
		return Binding{Field: field, Position: fields.Position{Path: path.Join()}}, nil
	}

	reg := s.Blocks
	list := content.BlocksPath
	rest := path[1:]
	for {
		if len(rest) < 2 {
			return Binding{}, fmt.Errorf("%w: %q does not address a block field", ErrUnknownField, path.String())
		}
		idx, err := strconv.Atoi(rest[0])
		if err != nil || idx < 0 {
			return Binding{}, fmt.Errorf("%w: %q has a non-numeric list index", content.ErrPath, path.String())
		}

		block, err := page.Block(list.Index(idx))
		if err != nil {
			return Binding{}, err
		}
		tmpl, err := reg.Get(block.Kind)
		if err != nil {
			return Binding{}, fmt.Errorf("bind %q: %w", path.String(), err)
		}

		rel := rest[1:]
		if nested, ok := tmpl.List(rel[0]); ok && len(rel) > 1 {
			reg = nested
			list = block.Path().Join(rel[0])
			rest = rel[1:]
			continue
		}

		field, ok := tmpl.Field(rel)
		if !ok {
			return Binding{}, fmt.Errorf("%w: %q is not declared on %s", ErrUnknownField, rel.String(), tmpl.Kind)
		}
		return Binding{
			Field: field,
			Position: fields.Position{
				Block: block.Path(),
				Index: block.Index,
				Path:  path.Join(),
			},
			Template: &tmpl,
			Block:    &block,
		}, nil
	}
}

// ListScope returns the registry governing the block list at path.
func (s PageSchema) ListScope(page *content.Page, list content.Path) (*Registry, error) {
	if list.Equal(content.BlocksPath) {
		if s.Blocks == nil {
			return nil, fmt.Errorf("%w: page has no block registry", ErrConfig)
		}
		return s.Blocks, nil
	}
	if len(list) < 3 {
		return nil, fmt.Errorf("%w: %q is not a block list", ErrUnknownField, list.String())
	}
	tmpl, err := s.TemplateAt(page, list.Parent())
	if err != nil {
		return nil, err
	}
	reg, ok := tmpl.List(list.Last())
	if !ok {
		return nil, fmt.Errorf("%w: %s has no block list %q", ErrUnknownField, tmpl.Kind, list.Last())
	}
	return reg, nil
}

// TemplateAt resolves the template of the block addressed by path.
func (s PageSchema) TemplateAt(page *content.Page, path content.Path) (Template, error) {
	reg, err := s.ListScope(page, path.Parent())
	if err != nil {
		return Template{}, err
	}
	block, err := page.Block(path)
	if err != nil {
		return Template{}, err
	}
	return reg.Get(block.Kind)
}
