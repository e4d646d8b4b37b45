package httpapi

import (
	"context"

	"github.com/riskibarqy/mpl-analyzer/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

// Middleware and response helpers run on every request; only handler spans
// are worth exporting.
var apiTracer = tracing.New(nil, "mpl-analyzer/internal/interfaces/httpapi", isHandlerSpan)

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}

var isHandlerSpan = tracing.HasPrefix("httpapi.Handler.")
