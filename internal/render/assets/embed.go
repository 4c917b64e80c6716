// Package assets embeds the page templates and stylesheet for HTML and PDF export.
package assets

import (
	"embed"
)

// Templates holds the html/template sources: page, day card, timeline row and panels
//
//go:embed templates/*.tmpl
var Templates embed.FS

// StyleCSS is inlined into every HTML document so exports are self-contained
//
//go:embed style.css
var StyleCSS string
