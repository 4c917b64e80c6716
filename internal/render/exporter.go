package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tabi-shiori/shiori/pkg/errors"
	"github.com/tabi-shiori/shiori/pkg/logger"
)

// Format represents an export format
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatText     Format = "text"
	FormatPDF      Format = "pdf"
)

// ParseFormat resolves a format name or its common alias ("md", "txt", "htm")
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html", "htm":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", errors.ErrUnsupportedFormat(s)
	}
}

// Exporter turns a composed page into a document
type Exporter interface {
	// Export renders the page. Only the PDF exporter blocks on ctx.
	Export(ctx context.Context, page *Page) ([]byte, error)
	// Name returns the human-readable name of the exporter (e.g., "Markdown", "HTML")
	Name() string
	// FileExtension returns the file extension for this format (e.g., ".md", ".html")
	FileExtension() string
	// ContentType returns the MIME type served for this format
	ContentType() string
}

// Manager manages all registered exporters
type Manager struct {
	exporters map[Format]Exporter
	mu        sync.RWMutex
}

// NewManager creates an empty export manager
func NewManager() *Manager {
	return &Manager{
		exporters: make(map[Format]Exporter),
	}
}

// Register registers an exporter for a specific format
func (m *Manager) Register(format Format, exporter Exporter) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.exporters[format] = exporter
	logger.Debug("Registered exporter",
		zap.String(logger.FieldFormat, string(format)),
		zap.String("name", exporter.Name()),
	)
}

// Exporter returns the exporter for a specific format
func (m *Manager) Exporter(format Format) (Exporter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	exporter, ok := m.exporters[format]
	if !ok {
		return nil, errors.ErrUnsupportedFormat(string(format))
	}
	return exporter, nil
}

// Export exports a page using the specified format
func (m *Manager) Export(ctx context.Context, page *Page, format Format) ([]byte, error) {
	exporter, err := m.Exporter(format)
	if err != nil {
		return nil, err
	}

	content, err := exporter.Export(ctx, page)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed,
			fmt.Sprintf("failed to export with %s exporter", exporter.Name()), err)
	}
	return content, nil
}

// ExportToFile exports a page to a file, creating parent directories as needed
func (m *Manager) ExportToFile(ctx context.Context, page *Page, outputPath string, format Format) error {
	content, err := m.Export(ctx, page, format)
	if err != nil {
		return err
	}
	return WriteFile(outputPath, content)
}

// WriteFile writes content to path, creating parent directories as needed
func WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// GenerateFilename generates a filename for the exported page
func (m *Manager) GenerateFilename(page *Page, format Format) string {
	baseName := sanitizeFilename(page.Title)
	if baseName == "" {
		baseName = "itinerary"
	}

	if exporter, err := m.Exporter(format); err == nil {
		return baseName + exporter.FileExtension()
	}

	switch format {
	case FormatMarkdown:
		return baseName + ".md"
	case FormatJSON:
		return baseName + ".json"
	case FormatHTML:
		return baseName + ".html"
	case FormatPDF:
		return baseName + ".pdf"
	default:
		return baseName + ".txt"
	}
}

// SupportedFormats returns all registered formats, sorted
func (m *Manager) SupportedFormats() []Format {
	m.mu.RLock()
	defer m.mu.RUnlock()

	formats := make([]Format, 0, len(m.exporters))
	for format := range m.exporters {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
