package content

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrPath reports a malformed dotted path.
	ErrPath = errors.New("content: invalid path")
	// ErrPathNotFound reports a path that does not resolve in the document.
	ErrPathNotFound = errors.New("content: path not found")
)

// Path is a parsed dotted path. Numeric segments index lists.
type Path []string

// ParsePath splits a dotted path, rejecting empty segments.
func ParsePath(raw string) (Path, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty path", ErrPath)
	}
	parts := strings.Split(trimmed, ".")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrPath, raw)
		}
		out = append(out, segment)
	}
	return out, nil
}

// MustPath panics when raw is malformed. Intended for literals.
func MustPath(raw string) Path {
	path, err := ParsePath(raw)
	if err != nil {
		panic(err)
	}
	return path
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Join returns a new path with the segments appended.
func (p Path) Join(segments ...string) Path {
	out := make(Path, 0, len(p)+len(segments))
	out = append(out, p...)
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return out
}

// JoinDotted appends the segments of the dotted relative path rel, so
// "left.src" adds two segments.
func (p Path) JoinDotted(rel string) Path {
	return p.Join(strings.Split(rel, ".")...)
}

// Concat appends another path.
func (p Path) Concat(other Path) Path {
	return p.Join(other...)
}

// Index returns a new path addressing the list item at i.
func (p Path) Index(i int) Path {
	return p.Join(strconv.Itoa(i))
}

// Parent drops the last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p.Join()[:len(p)-1]
}

// Last returns the final segment or "".
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// HasPrefix reports whether prefix is a leading run of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Equal compares two paths segment by segment.
func (p Path) Equal(other Path) bool {
	return len(p) == len(other) && p.HasPrefix(other)
}

func indexSegment(segment string) (int, bool) {
	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
