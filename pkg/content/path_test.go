package content

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePath(t *testing.T) {
	cases := []struct {
		raw     string
		want    Path
		wantErr bool
	}{
		{raw: "headline", want: Path{"headline"}},
		{raw: "blocks.2.left.src", want: Path{"blocks", "2", "left", "src"}},
		{raw: " blocks.0 ", want: Path{"blocks", "0"}},
		{raw: "", wantErr: true},
		{raw: "blocks..src", wantErr: true},
		{raw: "blocks.", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParsePath(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrPath) {
				t.Fatalf("%q: expected ErrPath, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.raw, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("%q mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
}

func TestPathHelpersDoNotAlias(t *testing.T) {
	base := MustPath("blocks.3")
	child := base.Join("features")
	other := base.Join("left")
	if child.String() != "blocks.3.features" || other.String() != "blocks.3.left" {
		t.Fatalf("unexpected joins: %s %s", child, other)
	}
	if got := child.Index(1).String(); got != "blocks.3.features.1" {
		t.Fatalf("unexpected index path %s", got)
	}
	if got := child.Parent().String(); got != "blocks.3" {
		t.Fatalf("unexpected parent %s", got)
	}
	if !child.HasPrefix(base) || base.HasPrefix(child) {
		t.Fatalf("prefix check failed")
	}
}

func TestJoinDottedSplitsSegments(t *testing.T) {
	got := MustPath("blocks.2").JoinDotted("left.src")
	if diff := cmp.Diff(Path{"blocks", "2", "left", "src"}, got); diff != "" {
		t.Fatalf("path (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Path{"blocks", "heading"}, Path{"blocks"}.JoinDotted("heading")); diff != "" {
		t.Fatalf("single segment (-want +got):\n%s", diff)
	}
}
