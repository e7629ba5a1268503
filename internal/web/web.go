// Package web holds the browser client served by the API process.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var content embed.FS

// Index returns the page served at the site root.
func Index() []byte {
	page, err := content.ReadFile("static/index.html")
	if err != nil {
		panic(err)
	}
	return page
}

// Static returns the asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
