package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/tabi-shiori/shiori/pkg/logger"
)

const (
	// MeterName is the default meter name for the application
	MeterName = "github.com/tabi-shiori/shiori"
)

// Metrics holds all application metrics
type Metrics struct {
	// Render metrics
	RendersTotal   metric.Int64Counter
	RenderDuration metric.Float64Histogram
	RenderedBytes  metric.Int64Histogram

	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
}

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// GetMetrics returns the global metrics instance, initializing it if necessary.
// Instruments are bound to whatever meter provider is global at first call,
// so telemetry.New must run before the first render.
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		var err error
		globalMetrics, err = initMetrics()
		if err != nil {
			logger.Error("Failed to initialize metrics", zap.Error(err))
			globalMetrics = &Metrics{}
		}
	})
	return globalMetrics
}

func initMetrics() (*Metrics, error) {
	return newMetrics(otel.Meter(MeterName))
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.RendersTotal, err = meter.Int64Counter(
		"shiori_renders_total",
		metric.WithDescription("Total number of itinerary renders"),
		metric.WithUnit("{render}"),
	)
	if err != nil {
		return nil, err
	}

	m.RenderDuration, err = meter.Float64Histogram(
		"shiori_render_duration_seconds",
		metric.WithDescription("Duration of itinerary renders in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30),
	)
	if err != nil {
		return nil, err
	}

	m.RenderedBytes, err = meter.Int64Histogram(
		"shiori_rendered_bytes",
		metric.WithDescription("Size of rendered documents in bytes"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(1024, 4096, 16384, 65536, 262144, 1048576),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"shiori_http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"shiori_http_request_duration_seconds",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("Metrics initialized")
	return m, nil
}

// RecordRender records one export of a trip to a format
func (m *Metrics) RecordRender(ctx context.Context, trip, format string, success bool, size int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("trip", trip),
		attribute.String("format", format),
		attribute.Bool("success", success),
	)
	if m.RendersTotal != nil {
		m.RendersTotal.Add(ctx, 1, attrs)
	}
	if m.RenderDuration != nil {
		m.RenderDuration.Record(ctx, duration.Seconds(), attrs)
	}
	if success && m.RenderedBytes != nil {
		m.RenderedBytes.Record(ctx, int64(size),
			metric.WithAttributes(attribute.String("format", format)),
		)
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, durationSeconds float64) {
	if m.HTTPRequestsTotal != nil {
		m.HTTPRequestsTotal.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("method", method),
				attribute.String("path", path),
				attribute.Int("status_code", statusCode),
			),
		)
	}
	if m.HTTPRequestDuration != nil {
		m.HTTPRequestDuration.Record(ctx, durationSeconds,
			metric.WithAttributes(
				attribute.String("method", method),
				attribute.String("path", path),
			),
		)
	}
}
