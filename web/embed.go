// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var content embed.FS

var (
	// TemplatesFS holds base.html and the page templates.
	TemplatesFS = mustSub("templates")
	// StaticFS holds the files served under /static/.
	StaticFS = mustSub("static")
)

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(content, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
