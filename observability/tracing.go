package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// StartSpan starts a span from the tracer provider carried in ctx. With no
// provider configured this is a no-op span.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return trace.SpanFromContext(ctx).TracerProvider().
		Tracer("github.com/mcpkit/mcpkit").
		Start(ctx, name, opts...)
}
