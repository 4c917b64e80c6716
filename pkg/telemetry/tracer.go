package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the default tracer name for the application
	TracerName = "github.com/tabi-shiori/shiori"
)

// Tracer returns the global tracer for the application
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a new span with the given name and returns the context and span.
// The caller is responsible for calling span.End() when the operation is complete.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// SpanFromContext returns the current span from the context.
// If no span is found, a no-op span is returned.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// SetSpanError records an error on the span and sets its status to error
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanOK sets the span status to OK
func SetSpanOK(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// Common attribute keys for consistent naming
var (
	AttrRenderID = attribute.Key("render.id")
	AttrTrip     = attribute.Key("render.trip")
	AttrFormat   = attribute.Key("render.format")
	AttrBytes    = attribute.Key("render.bytes")
	AttrDays     = attribute.Key("trip.days")
	AttrEntries  = attribute.Key("trip.entries")
)

// WithRenderAttributes returns span start options with render attributes
func WithRenderAttributes(renderID, trip, format string) trace.SpanStartOption {
	return trace.WithAttributes(
		AttrRenderID.String(renderID),
		AttrTrip.String(trip),
		AttrFormat.String(format),
	)
}
