package pageblocks

import (
	"io/fs"

	"github.com/goliatone/go-pageblocks/pkg/renderers/vanilla"
)

// AssetsFS exposes the stylesheet and editor script of the HTML renderer so Go
// applications can serve them without importing the renderer package.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(pageblocks.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
