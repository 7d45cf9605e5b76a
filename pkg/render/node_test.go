package render

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/fields"
)

const walkDoc = `{
  "headline": "H",
  "blocks": [
    {"_template": "paragraph", "text": "T"},
    {"_template": "features", "features": [
      {"_template": "feature", "heading": "a", "supporting_copy": "x"},
      {"_template": "hero", "headline": "misplaced"}
    ]},
    {"_template": "legacy_banner"}
  ]
}`

func TestWalkAnnotatesPositions(t *testing.T) {
	page, err := content.Decode([]byte(walkDoc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	nodes, err := Walk(page, blocks.DefaultPageSchema())
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("nodes = %d", len(nodes))
	}

	features := nodes[1].Children("features")
	if len(features) != 2 {
		t.Fatalf("children = %d", len(features))
	}
	want := Position{
		List:  content.MustPath("blocks.1.features"),
		Index: 1,
		Path:  content.MustPath("blocks.1.features.1"),
	}
	if diff := cmp.Diff(want, features[1].Position); diff != "" {
		t.Fatalf("position mismatch (-want +got):\n%s", diff)
	}
	if features[0].Template == nil || features[0].Template.Kind != content.KindFeature {
		t.Fatalf("feature did not resolve")
	}
	if !errors.Is(features[1].Err, blocks.ErrUnknownKind) {
		t.Fatalf("hero inside a feature list should fail closed, got %v", features[1].Err)
	}
	if !errors.Is(nodes[2].Err, blocks.ErrUnknownKind) {
		t.Fatalf("unknown kind should fail closed, got %v", nodes[2].Err)
	}

	var paths []string
	for _, diag := range Diagnose(nodes) {
		paths = append(paths, diag.Path)
	}
	if diff := cmp.Diff([]string{"blocks.1.features.1", "blocks.2"}, paths); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestPositionField(t *testing.T) {
	pos := Position{List: content.BlocksPath, Index: 2, Path: content.MustPath("blocks.2")}
	got := pos.Field("left.src")
	want := fields.Position{
		Block: content.Path{"blocks", "2"},
		Index: 2,
		Path:  content.Path{"blocks", "2", "left", "src"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field position (-want +got):\n%s", diff)
	}

	page, err := content.Decode([]byte(`{"blocks":[{},{},{"_template":"images","left":{"src":"/a.jpg"}}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := fields.CurrentValue(page, got); got != "/a.jpg" {
		t.Fatalf("current value = %q, want /a.jpg", got)
	}
}

func TestParseMode(t *testing.T) {
	if mode, err := ParseMode("EDIT"); err != nil || mode != ModeEdit {
		t.Fatalf("ParseMode(EDIT) = %v, %v", mode, err)
	}
	if mode, err := ParseMode(""); err != nil || mode != ModeView {
		t.Fatalf("ParseMode(\"\") = %v, %v", mode, err)
	}
	if _, err := ParseMode("draft"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestThemeConfigMergesVariant(t *testing.T) {
	cfg := LandingTheme("dark")
	if cfg.CSSVars["--page-background"] != "#051e26" {
		t.Fatalf("variant token not applied: %v", cfg.CSSVars)
	}
	if cfg.CSSVars["--font-body"] != "Georgia, serif" {
		t.Fatalf("base token lost: %v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/pageblocks.css" {
		t.Fatalf("asset url = %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("missing asset url = %q", got)
	}
}

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(_ context.Context, _ *content.Page, _ blocks.PageSchema, _ RenderOptions) (Result, error) {
	return Result{Body: []byte(s.name)}, nil
}

func TestRegistryDefault(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(stubRenderer{name: "html"})
	reg.MustRegister(stubRenderer{name: "terminal"})

	got, err := reg.Get("")
	if err != nil || got.Name() != "html" {
		t.Fatalf("default = %v, %v", got, err)
	}
	if err := reg.SetDefault("terminal"); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	if got, _ := reg.Get(""); got.Name() != "terminal" {
		t.Fatalf("default = %s", got.Name())
	}
	if err := reg.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("duplicate accepted")
	}
	if diff := cmp.Diff([]string{"html", "terminal"}, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestBuiltinThemesSelect(t *testing.T) {
	cfg, err := SelectTheme(context.Background(), BuiltinThemes(), "landing", "dark")
	if err != nil {
		t.Fatalf("SelectTheme: %v", err)
	}
	if cfg.Theme != "landing" || cfg.Variant != "dark" {
		t.Fatalf("selection = %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens["page-text"] != "#f2dfc6" {
		t.Fatalf("dark tokens not applied: %v", cfg.Tokens)
	}

	if _, err := SelectTheme(context.Background(), BuiltinThemes(), "acme", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if cfg, err := SelectTheme(context.Background(), BuiltinThemes(), "", ""); err != nil || cfg != nil {
		t.Fatalf("empty name = %v, %v; want nil, nil", cfg, err)
	}
}
