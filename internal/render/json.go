package render

import (
	"bytes"
	"context"
	"encoding/json"
)

// JSONExporter exports the composed view as indented JSON
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export encodes the page. HTML escaping is disabled so URLs and
// arrows stay readable.
func (e *JSONExporter) Export(_ context.Context, page *Page) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Name returns the human-readable name of this exporter
func (e *JSONExporter) Name() string {
	return "JSON"
}

// FileExtension returns the file extension for JSON files
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// ContentType returns the MIME type of JSON documents
func (e *JSONExporter) ContentType() string {
	return "application/json; charset=utf-8"
}
