package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Mode selects between the published page and the editable page.
type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

// ParseMode accepts "view" and "edit". An empty string is view.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeView:
		return ModeView, nil
	case ModeEdit:
		return ModeEdit, nil
	default:
		return "", fmt.Errorf("render: unknown mode %q", raw)
	}
}

// Notice is a host notification shown above the page in edit mode.
type Notice struct {
	Level   string
	Message string
}

// RenderOptions carry per-request presentation settings.
type RenderOptions struct {
	Mode Mode
	// Title is the document title. Defaults to "Home".
	Title string
	// Theme supplies tokens, CSS variables and asset URLs for the page shell.
	Theme *theme.RendererConfig
	// AssetPrefix is the URL prefix of the editor runtime. Defaults to
	// "/assets".
	AssetPrefix string
	// Fragment skips the page shell and emits only the block regions.
	Fragment bool
	Notices  []Notice
}

// DefaultTitle is the document title used when none is set.
const DefaultTitle = "Home"

// Editing reports whether edit affordances should be emitted.
func (o RenderOptions) Editing() bool {
	return o.Mode == ModeEdit
}

// WithDefaults fills empty settings.
func (o RenderOptions) WithDefaults() RenderOptions {
	if o.Mode == "" {
		o.Mode = ModeView
	}
	if strings.TrimSpace(o.Title) == "" {
		o.Title = DefaultTitle
	}
	if strings.TrimSpace(o.AssetPrefix) == "" {
		o.AssetPrefix = "/assets"
	}
	o.AssetPrefix = strings.TrimRight(o.AssetPrefix, "/")
	return o
}
