package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrAssetPath reports an upload target that escapes the asset root.
var ErrAssetPath = errors.New("store: asset path outside root")

// AssetDir writes uploaded files below a static root directory. The stored
// value of an image field is a site-root path such as "/photo.jpg"; the file
// lands at root/photo.jpg.
type AssetDir struct {
	root string
}

// NewAssetDir returns an asset directory rooted at root.
func NewAssetDir(root string) *AssetDir {
	return &AssetDir{root: filepath.Clean(root)}
}

// Root returns the directory uploads are written to.
func (a *AssetDir) Root() string {
	return a.root
}

// BaseName reduces a client supplied file name to its last element. Both
// slash and backslash separate elements.
func BaseName(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		return "", fmt.Errorf("%w: invalid file name %q", ErrAssetPath, name)
	}
	return base, nil
}

// Resolve maps a site path (dir joined with name) onto the filesystem.
func (a *AssetDir) Resolve(dir, name string) (string, error) {
	base, err := BaseName(name)
	if err != nil {
		return "", err
	}
	rel := path.Clean("/" + strings.Trim(dir, "/") + "/" + base)
	target := filepath.Join(a.root, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	if target != a.root && !strings.HasPrefix(target, a.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrAssetPath, rel)
	}
	return target, nil
}

// Write stores the contents of r as dir/name and returns the file path.
func (a *AssetDir) Write(ctx context.Context, dir, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target, err := a.Resolve(dir, name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("store: ensure asset dir: %w", err)
	}
	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("store: create asset %s: %w", target, err)
	}
	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("store: write asset %s: %w", target, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("store: close asset %s: %w", target, err)
	}
	return target, nil
}
