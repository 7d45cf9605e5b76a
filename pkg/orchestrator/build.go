package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/goliatone/go-pageblocks/pkg/render"
	"github.com/goliatone/go-pageblocks/pkg/renderers/vanilla"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

// IndexFile is the page written by Build.
const IndexFile = "index.html"

// BuildRequest describes a static build.
type BuildRequest struct {
	Request
	// OutputDir receives index.html, the stylesheet under assets/ and a copy
	// of Static.
	OutputDir string
	// Static is copied into the output verbatim (uploaded images). Optional.
	Static fs.FS
}

// BuildResult lists what Build wrote.
type BuildResult struct {
	Index       string
	Files       []string
	Diagnostics []render.Diagnostic
}

// Build renders the page in view mode with the HTML renderer and writes a
// self-contained site.
func (o *Orchestrator) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	if req.OutputDir == "" {
		return BuildResult{}, fmt.Errorf("orchestrator: build needs an output directory")
	}
	req.Options.Mode = render.ModeView
	req.Options.Fragment = false
	if req.Renderer == "" {
		req.Renderer = defaultRendererName
	}

	result, err := o.Render(ctx, req.Request)
	if err != nil {
		return BuildResult{}, err
	}

	var out BuildResult
	out.Diagnostics = result.Diagnostics

	if req.Static != nil {
		files, err := copyTree(ctx, req.Static, req.OutputDir)
		if err != nil {
			return BuildResult{}, err
		}
		out.Files = append(out.Files, files...)
	}
	assets, err := copyTree(ctx, vanilla.AssetsFS(), filepath.Join(req.OutputDir, "assets"))
	if err != nil {
		return BuildResult{}, err
	}
	out.Files = append(out.Files, assets...)

	out.Index = filepath.Join(req.OutputDir, IndexFile)
	if err := store.NewFileStore(out.Index).Save(ctx, result.Body); err != nil {
		return BuildResult{}, fmt.Errorf("orchestrator: write %s: %w", out.Index, err)
	}
	out.Files = append(out.Files, out.Index)
	o.logger.Info("site built", "index", out.Index, "files", len(out.Files), "diagnostics", len(out.Diagnostics))
	return out, nil
}

// copyTree copies every regular file of src below dst, overwriting.
func copyTree(ctx context.Context, src fs.FS, dst string) ([]string, error) {
	assets := store.NewAssetDir(dst)
	var written []string
	err := fs.WalkDir(src, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		data, err := fs.ReadFile(src, name)
		if err != nil {
			return err
		}
		target, err := assets.Write(ctx, path.Dir(name), path.Base(name), bytes.NewReader(data))
		if err != nil {
			return err
		}
		written = append(written, target)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: copy into %s: %w", dst, err)
	}
	return written, nil
}
