// Package web embeds the single page front end for the cipher API.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed public/*
var staticFiles embed.FS

// GetFileSystem returns the page assets rooted at public/
func GetFileSystem() http.FileSystem {
	fsys, err := fs.Sub(staticFiles, "public")
	if err != nil {
		panic(err)
	}
	return http.FS(fsys)
}
