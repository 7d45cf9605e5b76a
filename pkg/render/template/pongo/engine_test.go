package pongo_test

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-pageblocks/pkg/render/template/pongo"
	"github.com/goliatone/go-pageblocks/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var embeddedTemplates embed.FS

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	files, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := pongo.New(pongo.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestRenderTemplateWritesAndReturns(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello, Ada!\n" {
		t.Fatalf("result = %q", result)
	}
	if written != result {
		t.Fatalf("writer got %q, want %q", written, result)
	}
}

func TestGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "staging\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	shout := func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	}
	if err := engine.RegisterFilter("shout", shout); err != nil && !errors.Is(err, pongo.ErrFilterExists) {
		t.Fatalf("register filter: %v", err)
	}
	got, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!\n" {
		t.Fatalf("got %q", got)
	}
	if err := engine.RegisterFilter("shout", shout); !errors.Is(err, pongo.ErrFilterExists) {
		t.Fatalf("expected ErrFilterExists, got %v", err)
	}
}

func TestAutoescape(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("escape", map[string]any{"body": "<b>S & T</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "<p>&lt;b&gt;S &amp; T&lt;/b&gt;</p><p><b>S & T</b></p>\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCSSVarsFilter(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("vars", map[string]any{
		"vars": map[string]string{"--b": "2", "--a": "1"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<style>:root { --a: 1; --b: 2; }</style>\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderString(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderString("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "x"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "1-x" {
		t.Fatalf("got %q", got)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}
