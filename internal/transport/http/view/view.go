// Package view holds the server-rendered page templates, embedded so the
// binary needs nothing on disk.
package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var files embed.FS

// Pages parses every page template. Names are the file base names:
// login.tmpl, register.tmpl, home.tmpl.
func Pages() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.tmpl"))
}
