// Package tracing starts child spans for the layers behind the HTTP
// middleware and the report pipeline.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Filter decides whether a span name is worth recording.
type Filter func(name string) bool

// Tracer only creates spans under an existing valid parent. Requests that the
// HTTP middleware chose not to trace (health probes, metrics scrapes) and CLI
// runs without an exporter produce no root spans.
type Tracer struct {
	tracer trace.Tracer
	filter Filter
}

// New builds a Tracer backed by provider. A nil provider uses the global one,
// so spans follow whatever uptrace installs at startup.
func New(provider trace.TracerProvider, scope string, filter Filter) *Tracer {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Tracer{
		tracer: provider.Tracer(scope),
		filter: filter,
	}
}

func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if t.filter != nil && !t.filter(name) {
		return ctx, noopSpan
	}
	return t.tracer.Start(ctx, name, opts...)
}

// HasPrefix returns a Filter accepting names that start with any of prefixes.
func HasPrefix(prefixes ...string) Filter {
	return func(name string) bool {
		for _, prefix := range prefixes {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		}
		return false
	}
}
