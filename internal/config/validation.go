package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"github.com/tabi-shiori/shiori/internal/render"
	"github.com/tabi-shiori/shiori/pkg/errors"
	"github.com/tabi-shiori/shiori/pkg/logger"
)

// Bounds Chrome accepts for page.printToPDF scale
const (
	minPDFScale = 0.1
	maxPDFScale = 2.0
)

const minTextWidth = 20

// Validate checks the configuration and reports every problem at once.
// The returned AppError carries the individual messages as details.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Maps.Language != "" {
		if _, err := language.Parse(c.Maps.Language); err != nil {
			add("maps.language %q is not a valid language tag", c.Maps.Language)
		}
	}
	if c.Maps.Region != "" {
		if _, err := language.ParseRegion(c.Maps.Region); err != nil {
			add("maps.region %q is not a valid region code", c.Maps.Region)
		}
	}

	if _, err := render.ParseFormat(c.Render.Format); err != nil {
		add("render.format %q is not supported", c.Render.Format)
	}
	if c.Render.TripFile == "" && strings.TrimSpace(c.Render.DefaultTrip) == "" {
		add("render.default_trip or render.trip_file is required")
	}

	pdf := c.Render.PDF
	if !strings.EqualFold(pdf.Paper, PaperA4) && !strings.EqualFold(pdf.Paper, PaperLetter) {
		add("render.pdf.paper must be %s or %s, got %q", PaperA4, PaperLetter, pdf.Paper)
	}
	if pdf.Margin < 0 {
		add("render.pdf.margin cannot be negative")
	}
	if pdf.Scale < minPDFScale || pdf.Scale > maxPDFScale {
		add("render.pdf.scale must be between %.1f and %.1f, got %g", minPDFScale, maxPDFScale, pdf.Scale)
	}
	if pdf.TimeoutSeconds <= 0 {
		add("render.pdf.timeout_seconds must be positive")
	}
	if pdf.SettleDelayMS < 0 {
		add("render.pdf.settle_delay_ms cannot be negative")
	}
	if c.Render.Text.Width < minTextWidth {
		add("render.text.width must be at least %d, got %d", minTextWidth, c.Render.Text.Width)
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		add("logging.level %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		add("logging.format must be json or text, got %q", c.Logging.Format)
	}
	switch c.Logging.Output {
	case "", logger.OutputStdout, logger.OutputStderr:
	default:
		add("logging.output must be stdout or stderr, got %q", c.Logging.Output)
	}

	if c.Telemetry.Prometheus.Port < 0 || c.Telemetry.Prometheus.Port > 65535 {
		add("telemetry.prometheus.port must be between 0 and 65535, got %d", c.Telemetry.Prometheus.Port)
	}
	if c.Telemetry.Enabled && c.Telemetry.OTLP.Enabled && c.Telemetry.OTLP.Endpoint == "" {
		add("telemetry.otlp.endpoint is required when OTLP export is enabled")
	}

	if len(problems) == 0 {
		return nil
	}
	msg := problems[0]
	if len(problems) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", problems[0], len(problems)-1)
	}
	return errors.New(errors.ErrCodeConfigInvalid, msg).WithDetails(problems)
}

// MaskSecret hides all but the first and last four characters of a secret.
// Short secrets are masked entirely.
func MaskSecret(s string) string {
	const keep = 4
	if s == "" {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= keep*2 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:keep]) + strings.Repeat("*", len(runes)-keep*2) + string(runes[len(runes)-keep:])
}
