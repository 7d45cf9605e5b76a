// Package pageblocks renders and edits block-structured landing pages stored
// as a single JSON document. The root package re-exports the pieces most
// callers need; the full API lives under pkg/.
package pageblocks

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/orchestrator"
	"github.com/goliatone/go-pageblocks/pkg/render"
	"github.com/goliatone/go-pageblocks/pkg/session"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

// Page is a decoded content document.
type Page = content.Page

// PageSchema pairs page-level fields with the root block registry.
type PageSchema = blocks.PageSchema

// RenderOptions carries per-request renderer settings.
type RenderOptions = render.RenderOptions

// Request describes one orchestrated render.
type Request = orchestrator.Request

// DefaultSchema returns the landing page schema with the built-in block kinds.
func DefaultSchema() PageSchema {
	return blocks.DefaultPageSchema()
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Open loads the document at path into an editing session.
func Open(ctx context.Context, path string, schema PageSchema, options ...session.Option) (*session.Session, error) {
	return session.Load(ctx, store.NewFileStore(path), schema, options...)
}

// RenderHTML renders the JSON document data as a complete HTML page with the
// built-in theme.
func RenderHTML(ctx context.Context, data []byte, mode render.Mode, cfg *theme.RendererConfig) ([]byte, error) {
	if cfg == nil {
		cfg = render.LandingTheme("")
	}
	return orchestrator.New().Generate(ctx, orchestrator.Request{
		Data:    data,
		Options: render.RenderOptions{Mode: mode, Theme: cfg},
	})
}
