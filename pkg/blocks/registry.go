package blocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/fields"
)

// Option configures a Registry.
type Option func(*Registry)

// WithName labels the registry in diagnostics.
func WithName(name string) Option {
	return func(r *Registry) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.name = trimmed
		}
	}
}

// WithWidgets overrides the widget registry used to resolve undeclared
// widgets during registration.
func WithWidgets(widgets *fields.WidgetRegistry) Option {
	return func(r *Registry) {
		if widgets != nil {
			r.widgets = widgets
		}
	}
}

// Registry stores templates by kind. Registration order is kept because it is
// the order offered to editors when adding blocks.
type Registry struct {
	mu        sync.RWMutex
	name      string
	widgets   *fields.WidgetRegistry
	templates map[content.Kind]Template
	order     []content.Kind
}

// NewRegistry creates an empty registry.
func NewRegistry(options ...Option) *Registry {
	reg := &Registry{
		name:      "blocks",
		widgets:   fields.NewWidgetRegistry(),
		templates: make(map[content.Kind]Template),
	}
	for _, opt := range options {
		if opt != nil {
			opt(reg)
		}
	}
	return reg
}

// Name returns the registry label.
func (r *Registry) Name() string {
	return r.name
}

// Register validates and adds a template. Widgets and labels left empty are
// resolved first. Duplicate kinds are rejected.
func (r *Registry) Register(tmpl Template) error {
	if r == nil {
		return fmt.Errorf("%w: registry is nil", ErrConfig)
	}
	tmpl = cloneTemplate(tmpl)
	tmpl.Fields = r.widgets.Decorate(tmpl.Fields)
	if strings.TrimSpace(tmpl.Label) == "" {
		tmpl.Label = defaultLabel(tmpl.Kind)
	}
	if err := tmpl.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[tmpl.Kind]; exists {
		return fmt.Errorf("%w: %s already registered in %s", ErrConfig, tmpl.Kind, r.name)
	}
	r.templates[tmpl.Kind] = tmpl
	r.order = append(r.order, tmpl.Kind)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(tmpl Template) {
	if err := r.Register(tmpl); err != nil {
		panic(err)
	}
}

// Resolve looks a kind up. Missing kinds report false; it never panics.
func (r *Registry) Resolve(kind content.Kind) (Template, bool) {
	if r == nil {
		return Template{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, ok := r.templates[kind]
	if !ok {
		return Template{}, false
	}
	return cloneTemplate(tmpl), true
}

// Get mirrors Resolve with an error wrapping ErrUnknownKind.
func (r *Registry) Get(kind content.Kind) (Template, error) {
	tmpl, ok := r.Resolve(kind)
	if !ok {
		name := "blocks"
		if r != nil {
			name = r.name
		}
		return Template{}, fmt.Errorf("%w: %q not registered in %s", ErrUnknownKind, kind, name)
	}
	return tmpl, nil
}

// Has reports whether a kind is registered.
func (r *Registry) Has(kind content.Kind) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.templates[kind]
	return ok
}

// List returns registered kinds in registration order.
func (r *Registry) List() []content.Kind {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]content.Kind(nil), r.order...)
}

// Templates returns the registered templates in registration order.
func (r *Registry) Templates() []Template {
	kinds := r.List()
	out := make([]Template, 0, len(kinds))
	for _, kind := range kinds {
		if tmpl, ok := r.Resolve(kind); ok {
			out = append(out, tmpl)
		}
	}
	return out
}

func defaultLabel(kind content.Kind) string {
	name := string(kind)
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
