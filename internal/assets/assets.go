// Package assets serves the static files bundled with productgrid, among them the
// product list the grid loads by default.
package assets

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed www/*
var www embed.FS

// Prefix is the URL path the files are served under.
const Prefix = "/assets/"

// Handler serves dir when set, the embedded files otherwise. Paths are relative to Prefix.
func Handler(dir string) http.Handler {
	if dir != "" {
		return http.StripPrefix(Prefix, http.FileServer(http.Dir(dir)))
	}
	return http.StripPrefix(Prefix, http.FileServer(http.FS(Files())))
}

// Files returns the embedded files rooted at the www directory.
func Files() fs.FS {
	sub, err := fs.Sub(www, "www")
	if err != nil {
		// www is embedded at build time
		panic(err)
	}
	return sub
}
