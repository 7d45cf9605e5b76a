package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-pageblocks/pkg/fields"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry returns a registry with a component for every editable
// widget.
func NewDefaultRegistry() *Registry {
	registry := New()
	for _, widget := range []fields.Widget{
		fields.WidgetText,
		fields.WidgetTextarea,
		fields.WidgetColor,
		fields.WidgetSelect,
		fields.WidgetImage,
	} {
		name := string(widget)
		registry.MustRegister(name, Descriptor{
			Renderer: templateRenderer("controls."+name, templatePrefix+name+".tmpl"),
		})
	}
	return registry
}

func templateRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, control Control, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}
		name := templateName
		if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
			name = candidate
		}
		rendered, err := data.Template.RenderTemplate(name, map[string]any{"control": control})
		if err != nil {
			return fmt.Errorf("components: render %q: %w", name, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
