package fields

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Matcher decides whether a widget should handle a field.
type Matcher func(field Field) bool

type rule struct {
	widget   Widget
	priority int
	match    Matcher
	order    int
}

// WidgetRegistry resolves widgets for fields declared without one. Higher
// priority wins; ties fall back to registration order.
type WidgetRegistry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewWidgetRegistry returns a registry with the built-in matchers.
func NewWidgetRegistry() *WidgetRegistry {
	reg := &WidgetRegistry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for widget.
func (r *WidgetRegistry) Register(widget Widget, priority int, matcher Matcher) {
	if r == nil || matcher == nil || strings.TrimSpace(string(widget)) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		widget:   widget,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget for a field. An explicit widget always wins.
func (r *WidgetRegistry) Resolve(field Field) (Widget, bool) {
	if field.Widget != "" {
		return field.Widget, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.widget, true
		}
	}
	return "", false
}

// Decorate resolves widgets and default labels for every field.
func (r *WidgetRegistry) Decorate(list []Field) []Field {
	if len(list) == 0 {
		return nil
	}
	out := make([]Field, len(list))
	for idx, field := range list {
		if widget, ok := r.Resolve(field); ok {
			field.Widget = widget
		}
		out[idx] = field.WithDefaults()
	}
	return out
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func lastSegment(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

func (r *WidgetRegistry) registerBuiltins() {
	r.Register(WidgetColor, 90, func(field Field) bool {
		if len(field.Options) == 0 {
			return false
		}
		for _, option := range field.Options {
			if !hexColorPattern.MatchString(option) {
				return false
			}
		}
		return true
	})

	r.Register(WidgetSelect, 80, func(field Field) bool {
		return len(field.Options) > 0
	})

	r.Register(WidgetImage, 70, func(field Field) bool {
		return lastSegment(field.Name) == "src"
	})

	r.Register(WidgetTextarea, 60, func(field Field) bool {
		switch lastSegment(field.Name) {
		case "text", "subtext", "supporting_copy":
			return true
		default:
			return false
		}
	})

	r.Register(WidgetText, 0, func(Field) bool {
		return true
	})
}
