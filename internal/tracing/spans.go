package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrFileName   = "file.name"
	AttrFileBytes  = "file.bytes"
	AttrFileLines  = "file.lines"
	AttrFileExists = "file.exists"
	AttrSessionID  = "session.id"
	AttrLinesAdded = "diff.added"
	AttrLinesGone  = "diff.removed"
	AttrErrorType  = "error.type"
)

// Span names.
const (
	SpanOpen = "persist.open"
	SpanSave = "persist.save"
)

// Start opens a span on the globally installed tracer provider. With tracing
// disabled the global provider is a no-op and this costs almost nothing.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(ServiceName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error, errType string) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errType != "" {
			span.SetAttributes(attribute.String(AttrErrorType, errType))
		}
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
