package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	if _, err := s.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreSaveReplacesWholeFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "content", "data.json")
	s := NewFileStore(target)
	ctx := context.Background()

	if err := s.Save(ctx, []byte(`{"headline":"a long first version"}`)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save(ctx, []byte(`{"headline":"b"}`)); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(`{"headline":"b"}`, string(got)); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Fatalf("temp files left behind: %s", strings.Join(names, ", "))
	}
}

func TestFileStoreHonoursCancellation(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(ctx, []byte("{}")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMemoryStoreFailureInjection(t *testing.T) {
	s := NewMemoryStore([]byte(`{"a":1}`))
	ctx := context.Background()
	boom := errors.New("disk full")

	s.FailSaves(boom)
	if err := s.Save(ctx, []byte(`{"a":2}`)); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if got := string(s.Bytes()); got != `{"a":1}` {
		t.Fatalf("failed save changed content: %s", got)
	}

	s.FailSaves(nil)
	if err := s.Save(ctx, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.Saves() != 1 {
		t.Fatalf("saves = %d", s.Saves())
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	if _, err := NewMemoryStore(nil).Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssetDirWrite(t *testing.T) {
	root := t.TempDir()
	assets := NewAssetDir(root)

	target, err := assets.Write(context.Background(), "/", "photo.jpg", strings.NewReader("jpeg"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if target != filepath.Join(root, "photo.jpg") {
		t.Fatalf("target = %s", target)
	}
	data, err := os.ReadFile(target)
	if err != nil || string(data) != "jpeg" {
		t.Fatalf("read back %q, %v", data, err)
	}
}

func TestAssetDirStripsDirectoriesFromNames(t *testing.T) {
	root := t.TempDir()
	assets := NewAssetDir(root)

	target, err := assets.Resolve("/uploads", "../../etc/passwd")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if target != filepath.Join(root, "uploads", "passwd") {
		t.Fatalf("target = %s", target)
	}

	if _, err := assets.Resolve("/", ".."); !errors.Is(err, ErrAssetPath) {
		t.Fatalf("expected ErrAssetPath, got %v", err)
	}
}

func TestBaseName(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":             "photo.jpg",
		"../../etc/passwd":      "passwd",
		`C:\fakepath\x.jpg`:     "x.jpg",
		"uploads/nested/a.png/": "a.png",
	}
	for in, want := range cases {
		got, err := BaseName(in)
		if err != nil || got != want {
			t.Fatalf("BaseName(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := BaseName(".."); !errors.Is(err, ErrAssetPath) {
		t.Fatalf("expected ErrAssetPath, got %v", err)
	}
}
