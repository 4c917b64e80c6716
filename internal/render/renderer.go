package render

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tabi-shiori/shiori/internal/mapembed"
	"github.com/tabi-shiori/shiori/internal/model"
	"github.com/tabi-shiori/shiori/pkg/idgen"
	"github.com/tabi-shiori/shiori/pkg/logger"
	"github.com/tabi-shiori/shiori/pkg/telemetry"
)

// Options configures the default exporters
type Options struct {
	// Lang is the html lang attribute shared by the HTML and PDF documents
	Lang string
	PDF  PDFOptions
	Text TextOptions
}

// NewDefaultManager creates a manager with every built-in exporter registered
func NewDefaultManager(opts Options) *Manager {
	m := NewManager()
	html := NewHTMLExporterWithLang(opts.Lang)
	pdf := NewPDFExporterWithOptions(opts.PDF)
	pdf.html = html
	m.Register(FormatHTML, html)
	m.Register(FormatMarkdown, NewMarkdownExporter())
	m.Register(FormatJSON, NewJSONExporter())
	m.Register(FormatText, NewTextExporter(opts.Text))
	m.Register(FormatPDF, pdf)
	return m
}

// Result is one rendered document
type Result struct {
	RenderID    string
	Format      Format
	Content     []byte
	ContentType string
	Filename    string
	Duration    time.Duration
}

// Renderer runs a full render pass: compose, export, then log and record metrics
type Renderer struct {
	manager *Manager
	maps    *mapembed.Builder
}

// NewRenderer creates a renderer over manager. maps injects the map API key.
func NewRenderer(manager *Manager, maps *mapembed.Builder) *Renderer {
	return &Renderer{manager: manager, maps: maps}
}

// Manager returns the underlying export manager
func (r *Renderer) Manager() *Manager {
	return r.manager
}

// Maps returns the embed URL builder
func (r *Renderer) Maps() *mapembed.Builder {
	return r.maps
}

// Render composes trip and exports it to format. name labels logs and metrics.
// The render ID only appears in logs and spans, never in the document.
func (r *Renderer) Render(ctx context.Context, name string, trip *model.Trip, format Format) (*Result, error) {
	renderID := idgen.NewRenderID()
	log := logger.WithRenderContext(renderID, name).With(zap.String(logger.FieldFormat, string(format)))

	ctx, span := telemetry.StartSpan(ctx, "render."+string(format),
		telemetry.WithRenderAttributes(renderID, name, string(format)))
	defer span.End()

	start := time.Now()
	res, err := r.render(ctx, trip, format)
	duration := time.Since(start)

	size := 0
	if res != nil {
		size = len(res.Content)
	}
	telemetry.GetMetrics().RecordRender(ctx, name, string(format), err == nil, size, duration)

	if err != nil {
		telemetry.SetSpanError(span, err)
		log.Error("Render failed", zap.Error(err), zap.Duration("duration", duration))
		return nil, err
	}

	span.SetAttributes(
		telemetry.AttrBytes.Int(size),
		telemetry.AttrDays.Int(len(trip.Days)),
		telemetry.AttrEntries.Int(trip.EntryCount()),
	)
	telemetry.SetSpanOK(span)
	log.Info("Rendered itinerary",
		zap.Int("bytes", size),
		zap.Int("days", len(trip.Days)),
		zap.Duration("duration", duration),
	)

	res.RenderID = renderID
	res.Duration = duration
	return res, nil
}

func (r *Renderer) render(ctx context.Context, trip *model.Trip, format Format) (*Result, error) {
	exporter, err := r.manager.Exporter(format)
	if err != nil {
		return nil, err
	}

	page, err := Compose(trip, r.maps)
	if err != nil {
		return nil, err
	}

	content, err := r.manager.Export(ctx, page, format)
	if err != nil {
		return nil, err
	}

	return &Result{
		Format:      format,
		Content:     content,
		ContentType: exporter.ContentType(),
		Filename:    r.manager.GenerateFilename(page, format),
	}, nil
}
