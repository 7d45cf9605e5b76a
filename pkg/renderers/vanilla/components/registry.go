// Package components renders the settings controls of editable fields. Each
// widget maps to a descriptor; the defaults render embedded templates that a
// theme can override through its partials.
package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-pageblocks/pkg/fields"
	rendertemplate "github.com/goliatone/go-pageblocks/pkg/render/template"
)

// Choice is one entry of an enumerated control.
type Choice struct {
	Value    string
	Selected bool
}

// Control is the view of one field handed to a component.
type Control struct {
	Path      string
	Name      string
	Label     string
	Widget    fields.Widget
	Value     string
	Options   []Choice
	Preview   string
	UploadDir string
}

// NewControl builds the control for field at path with its current value.
func NewControl(field fields.Field, path, value string) Control {
	control := Control{
		Path:   path,
		Name:   field.Name,
		Label:  field.Label,
		Widget: field.Widget,
		Value:  value,
	}
	for _, option := range field.Options {
		control.Options = append(control.Options, Choice{Value: option, Selected: option == value})
	}
	return control
}

// Renderer writes the markup of control into buf.
type Renderer func(buf *bytes.Buffer, control Control, data ComponentData) error

// ComponentData carries the template engine and theme overrides.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	// Partials maps partial keys (`controls.select`) to replacement templates.
	Partials map[string]string
}

// Descriptor pairs a component name with its renderer.
type Descriptor struct {
	Name     string
	Renderer Renderer
}

// Registry maps widget names to descriptors.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{components: make(map[string]Descriptor)}
}

// Clone copies the registry so callers can override entries in isolation.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = descriptor
	}
	return cloned
}

// Register sets the descriptor for name, replacing any existing one.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = descriptor
	return nil
}

// MustRegister panics when Register fails.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor looks a component up.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	return descriptor, ok
}

// Names returns registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Render renders control through the component registered for its widget.
func (r *Registry) Render(control Control, data ComponentData) (string, error) {
	descriptor, ok := r.Descriptor(string(control.Widget))
	if !ok {
		return "", fmt.Errorf("components: no component for widget %q (field %s)", control.Widget, control.Path)
	}
	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, control, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
