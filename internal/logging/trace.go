package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// withTrace appends trace_id and span_id when ctx carries a valid span.
func withTrace(ctx context.Context, args []any) []any {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return args
	}
	return append(args, "trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
}
