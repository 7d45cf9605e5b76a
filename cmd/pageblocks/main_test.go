package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestValidateCommand(t *testing.T) {
	good := writeDoc(t, `{"headline":"H","blocks":[{"_template":"paragraph","text":"T"}]}`)
	out, err := run(t, "validate", "--content", good)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "is valid") {
		t.Fatalf("output = %q", out)
	}

	bad := writeDoc(t, `{"headline":"H","blocks":[{"_template":"legacy_banner"}]}`)
	out, err = run(t, "validate", bad)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !strings.Contains(out, "blocks.0 [legacy_banner]") {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderCommandBuildsSite(t *testing.T) {
	doc := writeDoc(t, `{"headline":"H","blocks":[{"_template":"paragraph","text":"Rendered copy"}]}`)
	dist := filepath.Join(t.TempDir(), "dist")

	out, err := run(t, "render", "--content", doc, "--out", dist, "--static-dir", filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	index, err := os.ReadFile(filepath.Join(dist, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(index), "Rendered copy") {
		t.Fatalf("index missing paragraph:\n%s", index)
	}
}

func TestSchemaCommandWritesJSON(t *testing.T) {
	out, err := run(t, "schema", "--format", "json")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if !strings.Contains(out, `"openapi": "3.0.3"`) {
		t.Fatalf("unexpected schema output:\n%.200s", out)
	}
}
