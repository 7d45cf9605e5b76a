package content

import (
	"fmt"
)

// Lookup resolves path against an arbitrary decoded JSON value.
func Lookup(root any, path Path) (any, error) {
	current := root
	for i, segment := range path {
		next, err := child(current, segment)
		if err != nil {
			return nil, fmt.Errorf("%w: %q (at %q)", ErrPathNotFound, path.String(), path[:i+1].String())
		}
		current = next
	}
	return current, nil
}

func child(node any, segment string) (any, error) {
	switch typed := node.(type) {
	case map[string]any:
		value, ok := typed[segment]
		if !ok {
			return nil, ErrPathNotFound
		}
		return value, nil
	case []any:
		idx, ok := indexSegment(segment)
		if !ok || idx >= len(typed) {
			return nil, ErrPathNotFound
		}
		return typed[idx], nil
	default:
		return nil, ErrPathNotFound
	}
}

// Assign writes value at path inside root. Missing intermediate objects are
// created; list segments must already exist.
func Assign(root map[string]any, path Path, value any) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: cannot assign the document root", ErrPath)
	}
	var current any = root
	for i, segment := range path[:len(path)-1] {
		next, err := child(current, segment)
		if err != nil {
			obj, ok := current.(map[string]any)
			if !ok {
				return fmt.Errorf("%w: %q (at %q)", ErrPathNotFound, path.String(), path[:i+1].String())
			}
			created := make(map[string]any)
			obj[segment] = created
			next = created
		}
		switch next.(type) {
		case map[string]any, []any:
		default:
			return fmt.Errorf("%w: %q traverses a scalar at %q", ErrPath, path.String(), path[:i+1].String())
		}
		current = next
	}

	last := path.Last()
	switch typed := current.(type) {
	case map[string]any:
		typed[last] = value
		return nil
	case []any:
		idx, ok := indexSegment(last)
		if !ok || idx >= len(typed) {
			return fmt.Errorf("%w: %q", ErrPathNotFound, path.String())
		}
		typed[idx] = value
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrPathNotFound, path.String())
	}
}

// Shape reports whether every segment of path exists in root. It is used to
// check field declarations against a template's default payload.
func Shape(root map[string]any, path Path) bool {
	_, err := Lookup(root, path)
	return err == nil
}
