package render

import (
	"context"
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig flattens a theme selection into renderer settings. Variant
// tokens, templates and asset files override the manifest's. Every token is
// also exposed as a CSS custom property (`brand` becomes `--brand`).
func ThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	files := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if strings.TrimSpace(variant.Assets.Prefix) != "" {
			prefix = variant.Assets.Prefix
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+strings.TrimPrefix(key, "--")] = value
	}

	name := selection.Theme
	if name == "" {
		name = manifest.Name
	}
	return &theme.RendererConfig{
		Theme:    name,
		Variant:  selection.Variant,
		Tokens:   tokens,
		CSSVars:  vars,
		Partials: partials,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
				return file
			}
			return path.Join("/", prefix, file)
		},
	}
}

// SelectTheme asks selector for name/variant and converts the result.
func SelectTheme(ctx context.Context, selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil || strings.TrimSpace(name) == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q/%q: %w", name, variant, err)
	}
	return ThemeConfig(selection), nil
}

// LandingManifest is the built-in theme for the landing page.
func LandingManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "landing",
		Version: "1.0.0",
		Tokens: map[string]string{
			"page-background": "#ffffff",
			"page-text":       "#1b1b1b",
			"font-body":       "Georgia, serif",
			"font-heading":    "system-ui, sans-serif",
			"content-width":   "42rem",
			"grid-gap":        "2rem",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": "pageblocks.css",
				"editor":     "pageblocks-editor.js",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"page-background": "#051e26",
					"page-text":       "#f2dfc6",
				},
			},
		},
	}
}

// LandingTheme returns the renderer settings of the built-in theme.
func LandingTheme(variant string) *theme.RendererConfig {
	manifest := LandingManifest()
	return ThemeConfig(&theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest})
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overrides {
		out[key] = value
	}
	return out
}

// Manifests selects among a fixed set of theme manifests keyed by name.
type Manifests map[string]*theme.Manifest

// BuiltinThemes holds the themes shipped with the package.
func BuiltinThemes() Manifests {
	landing := LandingManifest()
	return Manifests{landing.Name: landing}
}

// Select implements theme.ThemeSelector. An unknown variant falls back to the
// manifest's base tokens.
func (m Manifests) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	manifest, ok := m[name]
	if !ok || manifest == nil {
		return nil, fmt.Errorf("render: unknown theme %q", name)
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}
