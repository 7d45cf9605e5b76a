package template

import (
	"io"
)

// FilterFunc transforms a value inside a template expression.
type FilterFunc func(input any, param any) (any, error)

// TemplateRenderer renders named templates or inline template strings with a
// data context. Output is returned and also copied to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(source string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn FilterFunc) error
	GlobalContext(data map[string]any) error
}
