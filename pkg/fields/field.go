package fields

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-pageblocks/internal/labels"
	"github.com/goliatone/go-pageblocks/pkg/content"
)

// Widget names the control used to edit a field.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetTextarea Widget = "textarea"
	WidgetColor    Widget = "color"
	WidgetSelect   Widget = "select"
	WidgetImage    Widget = "image"
	// WidgetBlocks marks a nested block list governed by its own registry.
	WidgetBlocks Widget = "blocks"
)

var (
	// ErrInvalidField reports a malformed field declaration.
	ErrInvalidField = errors.New("fields: invalid field declaration")
	// ErrInvalidOption reports a value outside a field's option set.
	ErrInvalidOption = errors.New("fields: value not in option set")
	// ErrInvalidValue reports a value of the wrong type for the widget.
	ErrInvalidValue = errors.New("fields: invalid value")
)

// Getter reads the current working state. *content.Page satisfies it.
type Getter interface {
	Get(path content.Path) (any, error)
}

// Position is the parent context handed to hooks and nested renderers.
type Position struct {
	// Block addresses the enclosing block; empty for page-level fields.
	Block content.Path
	// Index is the block's position inside its list.
	Index int
	// Path is the absolute path of the field.
	Path content.Path
}

// ParseFunc maps an uploaded file name to the stored value.
type ParseFunc func(filename string) string

// UploadDirFunc decides where uploads for a field are stored.
type UploadDirFunc func() string

// PreviewFunc resolves what an image field should currently display.
type PreviewFunc func(values Getter, pos Position) string

// Field describes one editable property.
type Field struct {
	Name        string   `json:"name" yaml:"name"`
	Label       string   `json:"label,omitempty" yaml:"label,omitempty"`
	Widget      Widget   `json:"widget,omitempty" yaml:"widget,omitempty"`
	Options     []string `json:"options,omitempty" yaml:"options,omitempty"`
	Inline      bool     `json:"inline,omitempty" yaml:"inline,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`

	Parse      ParseFunc     `json:"-" yaml:"-"`
	UploadDir  UploadDirFunc `json:"-" yaml:"-"`
	PreviewSrc PreviewFunc   `json:"-" yaml:"-"`
}

// Path parses the field name.
func (f Field) Path() (content.Path, error) {
	path, err := content.ParsePath(f.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	return path, nil
}

// Validate checks the declaration itself. Shape checks against a default
// payload happen in the block registry.
func (f Field) Validate() error {
	if _, err := f.Path(); err != nil {
		return err
	}
	switch f.Widget {
	case WidgetText, WidgetTextarea, WidgetImage, WidgetBlocks:
		if len(f.Options) > 0 {
			return fmt.Errorf("%w: %q declares options on a %s widget", ErrInvalidField, f.Name, f.Widget)
		}
	case WidgetColor, WidgetSelect:
		if len(f.Options) == 0 {
			return fmt.Errorf("%w: %q needs options for a %s widget", ErrInvalidField, f.Name, f.Widget)
		}
		seen := make(map[string]struct{}, len(f.Options))
		for _, option := range f.Options {
			if strings.TrimSpace(option) == "" {
				return fmt.Errorf("%w: %q has an empty option", ErrInvalidField, f.Name)
			}
			if _, dup := seen[option]; dup {
				return fmt.Errorf("%w: %q repeats option %q", ErrInvalidField, f.Name, option)
			}
			seen[option] = struct{}{}
		}
	case "":
		return fmt.Errorf("%w: %q has no widget", ErrInvalidField, f.Name)
	default:
		return fmt.Errorf("%w: %q uses unknown widget %q", ErrInvalidField, f.Name, f.Widget)
	}
	return nil
}

// Enumerated reports whether the field constrains input to Options.
func (f Field) Enumerated() bool {
	return f.Widget == WidgetColor || f.Widget == WidgetSelect
}

// Allows reports whether value is acceptable for an enumerated field.
func (f Field) Allows(value string) bool {
	if !f.Enumerated() {
		return true
	}
	return slices.Contains(f.Options, value)
}

// Coerce validates a raw edit for the field and returns the value to store.
// Out-of-set values for color and select widgets are rejected.
func (f Field) Coerce(value any) (any, error) {
	if f.Widget == WidgetBlocks {
		return nil, fmt.Errorf("%w: %q is a block list; use block operations", ErrInvalidValue, f.Name)
	}
	text, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %q expects a string, got %T", ErrInvalidValue, f.Name, value)
	}
	if !f.Allows(text) {
		return nil, fmt.Errorf("%w: %q does not accept %q (options: %s)", ErrInvalidOption, f.Name, text, strings.Join(f.Options, ", "))
	}
	return text, nil
}

// StoredPath runs the parse hook on an uploaded file name.
func (f Field) StoredPath(filename string) string {
	if f.Parse != nil {
		return f.Parse(filename)
	}
	return RootPath(filename)
}

// Dir runs the upload directory hook.
func (f Field) Dir() string {
	if f.UploadDir != nil {
		return f.UploadDir()
	}
	return "/"
}

// Preview resolves the display value for the field at pos.
func (f Field) Preview(values Getter, pos Position) string {
	if f.PreviewSrc != nil {
		return f.PreviewSrc(values, pos)
	}
	return CurrentValue(values, pos)
}

// WithDefaults fills the label from the name when it is empty.
func (f Field) WithDefaults() Field {
	if strings.TrimSpace(f.Label) == "" {
		f.Label = labels.FromName(f.Name)
	}
	f.Options = slices.Clone(f.Options)
	return f
}

// RootPath is the default parse hook: the uploaded name relative to the site
// root.
func RootPath(filename string) string {
	name := strings.TrimLeft(strings.TrimSpace(filename), "/")
	return "/" + name
}

// CurrentValue is the default preview source: whatever the working copy holds
// at the field's position.
func CurrentValue(values Getter, pos Position) string {
	if values == nil || len(pos.Path) == 0 {
		return ""
	}
	value, err := values.Get(pos.Path)
	if err != nil {
		return ""
	}
	text, _ := value.(string)
	return text
}
