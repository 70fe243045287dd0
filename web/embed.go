// Package web carries the browser-side form controller served to the
// marketing pages. The assets are embedded so the binary is self-contained.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// Assets returns the embedded static assets rooted at the static directory.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
