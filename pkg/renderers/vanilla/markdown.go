package vanilla

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
	})
	return policy
}

// markdown converts authored copy to sanitised HTML.
type markdown struct {
	engine goldmark.Markdown
}

func newMarkdown() *markdown {
	return &markdown{engine: goldmark.New(goldmark.WithExtensions(extension.Typographer))}
}

func (m *markdown) HTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := m.engine.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("vanilla: markdown: %w", err)
	}
	return sanitizer().Sanitize(buf.String()), nil
}
