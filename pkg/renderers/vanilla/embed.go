package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/blocks/*.tmpl templates/components/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// Asset names, relative to AssetsFS.
const (
	StylesheetName   = "pageblocks.css"
	EditorScriptName = "pageblocks-editor.js"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the stylesheet and the editor runtime so hosts can serve
// them or copy them into a static build.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
