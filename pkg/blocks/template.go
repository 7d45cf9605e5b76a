package blocks

import (
	"fmt"

	"github.com/mohae/deepcopy"

	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/fields"
)

// Template is the registered schema for one block kind.
type Template struct {
	Kind        content.Kind
	Label       string
	DefaultItem map[string]any
	Fields      []fields.Field
	// Lists maps the name of a blocks-widget field to the registry that
	// governs the nested list.
	Lists map[string]*Registry
}

// NewItem returns a fresh copy of the default payload tagged with the kind.
func (t Template) NewItem() map[string]any {
	item, _ := deepcopy.Copy(t.DefaultItem).(map[string]any)
	if item == nil {
		item = make(map[string]any)
	}
	item[content.KindKey] = string(t.Kind)
	return item
}

// Field returns the declared field whose name equals the relative path.
func (t Template) Field(rel content.Path) (fields.Field, bool) {
	name := rel.String()
	for _, field := range t.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return fields.Field{}, false
}

// List returns the registry for a nested block list.
func (t Template) List(name string) (*Registry, bool) {
	if t.Lists == nil {
		return nil, false
	}
	reg, ok := t.Lists[name]
	return reg, ok && reg != nil
}

// Inline returns the fields edited in place.
func (t Template) Inline() []fields.Field {
	var out []fields.Field
	for _, field := range t.Fields {
		if field.Inline {
			out = append(out, field)
		}
	}
	return out
}

// Settings returns the fields edited through the block's settings panel.
func (t Template) Settings() []fields.Field {
	var out []fields.Field
	for _, field := range t.Fields {
		if !field.Inline && field.Widget != fields.WidgetBlocks {
			out = append(out, field)
		}
	}
	return out
}

func (t Template) validate() error {
	if !t.Kind.Valid() {
		return fmt.Errorf("%w: kind %q is not part of the block set", ErrConfig, t.Kind)
	}
	if t.DefaultItem == nil {
		return fmt.Errorf("%w: %s has no default item", ErrConfig, t.Kind)
	}
	if raw, ok := t.DefaultItem[content.KindKey]; ok && raw != string(t.Kind) {
		return fmt.Errorf("%w: %s default item is tagged %v", ErrConfig, t.Kind, raw)
	}

	seen := make(map[string]struct{}, len(t.Fields))
	for _, field := range t.Fields {
		if err := field.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConfig, t.Kind, err)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("%w: %s declares %q twice", ErrConfig, t.Kind, field.Name)
		}
		seen[field.Name] = struct{}{}

		path, _ := field.Path()
		value, err := content.Lookup(t.DefaultItem, path)
		if err != nil {
			return fmt.Errorf("%w: %s field %q does not resolve against the default item", ErrConfig, t.Kind, field.Name)
		}

		switch field.Widget {
		case fields.WidgetBlocks:
			if err := t.validateList(field, value); err != nil {
				return err
			}
		default:
			text, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: %s default for %q must be a string", ErrConfig, t.Kind, field.Name)
			}
			if !field.Allows(text) {
				return fmt.Errorf("%w: %s default %q for %q is outside its options", ErrConfig, t.Kind, text, field.Name)
			}
		}
	}

	for name := range t.Lists {
		field, ok := t.Field(content.Path{name})
		if !ok || field.Widget != fields.WidgetBlocks {
			return fmt.Errorf("%w: %s list %q has no blocks field", ErrConfig, t.Kind, name)
		}
	}
	return nil
}

func (t Template) validateList(field fields.Field, value any) error {
	reg, ok := t.List(field.Name)
	if !ok {
		return fmt.Errorf("%w: %s list %q has no registry", ErrConfig, t.Kind, field.Name)
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("%w: %s default for %q must be a list", ErrConfig, t.Kind, field.Name)
	}
	for idx, item := range items {
		data, _ := item.(map[string]any)
		if !reg.Has(content.KindOf(data)) {
			return fmt.Errorf("%w: %s default %s.%d has kind %q outside its list", ErrConfig, t.Kind, field.Name, idx, content.KindOf(data))
		}
	}
	return nil
}

func cloneTemplate(src Template) Template {
	clone := src
	clone.DefaultItem, _ = deepcopy.Copy(src.DefaultItem).(map[string]any)
	clone.Fields = append([]fields.Field(nil), src.Fields...)
	if src.Lists != nil {
		clone.Lists = make(map[string]*Registry, len(src.Lists))
		for name, reg := range src.Lists {
			clone.Lists[name] = reg
		}
	}
	return clone
}
