package render

import (
	"context"
	"fmt"
	"html"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/tabi-shiori/shiori/pkg/logger"
)

// PDFOptions contains configuration for PDF generation
type PDFOptions struct {
	// Paper dimensions in inches (A4: 8.27 x 11.69)
	PaperWidth  float64
	PaperHeight float64

	// Margins in inches
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64

	// DisplayHeaderFooter prints the trip title and page numbers on every page
	DisplayHeaderFooter bool

	// Print background colors and images
	PrintBackground bool

	// Scale of the webpage rendering (1.0 = 100%)
	Scale float64

	// Timeout bounds the whole Chrome session
	Timeout time.Duration

	// SettleDelay gives lazily loaded map frames time to paint before printing
	SettleDelay time.Duration

	// ChromePath overrides the Chrome binary; CHROME_PATH is used when empty
	ChromePath string
}

// DefaultPDFOptions returns default PDF options for A4 paper
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PaperWidth:  8.27,
		PaperHeight: 11.69,

		MarginTop:    0.59, // ~15mm
		MarginBottom: 0.59,
		MarginLeft:   0.59,
		MarginRight:  0.59,

		DisplayHeaderFooter: true,
		PrintBackground:     true,
		Scale:               1.0,
		Timeout:             60 * time.Second,
		SettleDelay:         time.Second,
	}
}

// PDFExporter prints the HTML document with headless Chrome
type PDFExporter struct {
	html    *HTMLExporter
	options PDFOptions
}

// NewPDFExporter creates a new PDF exporter with default options
func NewPDFExporter() *PDFExporter {
	return NewPDFExporterWithOptions(DefaultPDFOptions())
}

// NewPDFExporterWithOptions creates a new PDF exporter with custom options.
// Zero paper, scale and timeout fields take their defaults.
func NewPDFExporterWithOptions(opts PDFOptions) *PDFExporter {
	return &PDFExporter{
		html:    NewHTMLExporter(),
		options: opts.withDefaults(),
	}
}

func (o PDFOptions) withDefaults() PDFOptions {
	def := DefaultPDFOptions()
	if o.PaperWidth <= 0 || o.PaperHeight <= 0 {
		o.PaperWidth, o.PaperHeight = def.PaperWidth, def.PaperHeight
	}
	if o.Scale <= 0 {
		o.Scale = def.Scale
	}
	if o.Timeout <= 0 {
		o.Timeout = def.Timeout
	}
	return o
}

// Export renders the print variant of the HTML document and prints it to PDF
func (e *PDFExporter) Export(ctx context.Context, pg *Page) ([]byte, error) {
	startTime := time.Now()

	htmlDoc, err := e.html.render(pg, true)
	if err != nil {
		return nil, err
	}

	// Write HTML to a temporary file (avoids data URL size limits)
	tmpFile, err := os.CreateTemp("", "shiori-pdf-*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(htmlDoc); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	tmpFile.Close()

	ctx, cancel := context.WithTimeout(ctx, e.options.Timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("headless", true),
	)

	chromePath := e.options.ChromePath
	if chromePath == "" {
		chromePath = os.Getenv("CHROME_PATH")
	}
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
		logger.Debug("Using custom Chrome path", zap.String("chrome_path", chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			logger.Debug(fmt.Sprintf("chromedp: "+format, args...))
		}),
	)
	defer browserCancel()

	header, footer := e.headerFooter(pg)

	var pdfData []byte
	chromeStart := time.Now()
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+tmpPath),
		chromedp.WaitReady("body"),
		chromedp.Sleep(e.options.SettleDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithPaperWidth(e.options.PaperWidth).
				WithPaperHeight(e.options.PaperHeight).
				WithMarginTop(e.options.MarginTop).
				WithMarginBottom(e.options.MarginBottom).
				WithMarginLeft(e.options.MarginLeft).
				WithMarginRight(e.options.MarginRight).
				WithDisplayHeaderFooter(e.options.DisplayHeaderFooter).
				WithHeaderTemplate(header).
				WithFooterTemplate(footer).
				WithPrintBackground(e.options.PrintBackground).
				WithScale(e.options.Scale).
				WithPreferCSSPageSize(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		logger.Error("Failed to generate PDF",
			zap.Error(err),
			zap.Duration("chrome_duration", time.Since(chromeStart)),
		)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	logger.Debug("PDF generated",
		zap.Int("pdf_size_bytes", len(pdfData)),
		zap.String("pdf_size_human", formatBytes(len(pdfData))),
		zap.Duration("chrome_duration", time.Since(chromeStart)),
		zap.Duration("total_duration", time.Since(startTime)),
	)

	return pdfData, nil
}

// headerFooter builds the Chrome print templates. Chrome fills elements with
// the classes pageNumber and totalPages.
func (e *PDFExporter) headerFooter(pg *Page) (header, footer string) {
	header = fmt.Sprintf(`<div style="width:100%%; padding:4px 16px; font-size:8px; font-family:system-ui,sans-serif; color:#737373;">%s</div>`,
		html.EscapeString(pg.Title))
	footer = `<div style="width:100%; padding:0 16px; font-size:8px; font-family:system-ui,sans-serif; color:#737373; text-align:right;"><span class="pageNumber"></span> / <span class="totalPages"></span></div>`
	return header, footer
}

// Name returns the human-readable name of this exporter
func (e *PDFExporter) Name() string {
	return "PDF"
}

// FileExtension returns the file extension for PDF files
func (e *PDFExporter) FileExtension() string {
	return ".pdf"
}

// ContentType returns the MIME type of PDF documents
func (e *PDFExporter) ContentType() string {
	return "application/pdf"
}
