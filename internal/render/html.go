package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/tabi-shiori/shiori/internal/icon"
	"github.com/tabi-shiori/shiori/internal/render/assets"
)

// DefaultLang is the document language of the HTML shell
const DefaultLang = "ja"

var pageTemplate = template.Must(
	template.New("shiori").
		Funcs(template.FuncMap{"icon": icon.SVG}).
		ParseFS(assets.Templates, "templates/*.tmpl"),
)

type htmlData struct {
	Page  *Page
	CSS   template.CSS
	Lang  string
	Print bool
}

// HTMLExporter exports a page to a self-contained HTML5 document with an
// inline stylesheet and inline SVG icons
type HTMLExporter struct {
	lang string
}

// NewHTMLExporter creates a new HTML exporter
func NewHTMLExporter() *HTMLExporter {
	return NewHTMLExporterWithLang(DefaultLang)
}

// NewHTMLExporterWithLang creates an HTML exporter whose document carries lang
func NewHTMLExporterWithLang(lang string) *HTMLExporter {
	if lang == "" {
		lang = DefaultLang
	}
	return &HTMLExporter{lang: lang}
}

// Export renders the page template
func (e *HTMLExporter) Export(_ context.Context, page *Page) ([]byte, error) {
	return e.render(page, false)
}

func (e *HTMLExporter) render(page *Page, print bool) ([]byte, error) {
	var buf bytes.Buffer
	data := htmlData{
		Page:  page,
		CSS:   template.CSS(assets.StyleCSS),
		Lang:  e.lang,
		Print: print,
	}
	if err := pageTemplate.ExecuteTemplate(&buf, "page", data); err != nil {
		return nil, fmt.Errorf("failed to execute page template: %w", err)
	}
	return buf.Bytes(), nil
}

// Name returns the human-readable name of this exporter
func (e *HTMLExporter) Name() string {
	return "HTML"
}

// FileExtension returns the file extension for HTML files
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// ContentType returns the MIME type of HTML documents
func (e *HTMLExporter) ContentType() string {
	return "text/html; charset=utf-8"
}
