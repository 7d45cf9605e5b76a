package terminal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/render"
	"github.com/goliatone/go-pageblocks/pkg/testsupport"
)

const doc = `{
  "headline": "Home",
  "subtext": "Welcome",
  "blocks": [
    {"_template": "hero", "headline": "Suspended", "subtext": "Observer"},
    {"_template": "paragraph", "text": "Some **copy**."},
    {"_template": "legacy_banner"},
    {"_template": "images", "left": {"src": "/a.jpg", "alt": "ocean"}, "right": {"src": "/b.jpg", "alt": "dunes"}},
    {"_template": "features", "features": [
      {"_template": "feature", "heading": "one", "supporting_copy": "first"},
      {"_template": "feature", "heading": "two", "supporting_copy": "second"}
    ]}
  ]
}`

func decode(t *testing.T, raw string) *content.Page {
	t.Helper()
	page, err := content.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return page
}

func TestMarkdownViewMode(t *testing.T) {
	result, markdown, err := New().Markdown(testsupport.Context(), decode(t, doc), blocks.DefaultPageSchema(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}

	testsupport.AssertGolden(t, filepath.Join("testdata", "view.golden.md"), []byte(markdown))
	if got := result.Count(content.KindFeature); got != 2 {
		t.Fatalf("feature regions = %d", got)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Path != "blocks.2" {
		t.Fatalf("diagnostics = %+v", result.Diagnostics)
	}
}

func TestMarkdownEditModeAnnotatesPaths(t *testing.T) {
	_, markdown, err := New().Markdown(testsupport.Context(), decode(t, doc), blocks.DefaultPageSchema(), render.RenderOptions{Mode: render.ModeEdit, Fragment: true})
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	for _, fragment := range []string{
		"`blocks.0` **Hero**\n\n## Suspended",
		"`blocks.2` **legacy_banner**\n\n> **legacy_banner** cannot be rendered:",
		"`blocks.4.features.1` **Feature**\n\n### two",
	} {
		if !strings.Contains(markdown, fragment) {
			t.Fatalf("edit markdown missing %q:\n%s", fragment, markdown)
		}
	}
	if strings.HasPrefix(markdown, "# Home") {
		t.Fatalf("fragment kept the page heading")
	}
}

func TestRenderStylesWithGlamour(t *testing.T) {
	r := New(WithStyle("notty"), WithWidth(60))
	result, err := r.Render(testsupport.Context(), decode(t, doc), blocks.DefaultPageSchema(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := result.String()
	for _, text := range []string{"Suspended", "Observer", "copy", "second"} {
		if !strings.Contains(out, text) {
			t.Fatalf("styled output missing %q:\n%s", text, out)
		}
	}
	if strings.Contains(out, "Home\n\n_Welcome_") {
		t.Fatalf("output was not styled:\n%s", out)
	}
	if r.Name() != "terminal" {
		t.Fatalf("name = %s", r.Name())
	}
}

func TestHandlerOverride(t *testing.T) {
	r := New(WithHandler(content.KindParagraph, func(b *Block) (string, error) {
		return strings.ToUpper(b.String("text")) + "\n\n", nil
	}))
	_, markdown, err := r.Markdown(testsupport.Context(), decode(t, `{"blocks":[{"_template":"paragraph","text":"quiet"}]}`), blocks.DefaultPageSchema(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if markdown != "QUIET\n\n" {
		t.Fatalf("markdown = %q", markdown)
	}
}

func TestDetectWithoutTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	style, width := Detect(f)
	if style != "notty" || width != DefaultWidth {
		t.Fatalf("Detect = %s, %d", style, width)
	}
}
