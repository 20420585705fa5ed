package fosterdocs

import (
	"io/fs"

	"github.com/goliatone/go-fosterdocs/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the print stylesheet so Go applications can serve it.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(fosterdocs.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
