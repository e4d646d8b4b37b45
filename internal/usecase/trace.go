package usecase

import (
	"context"

	"github.com/riskibarqy/mpl-analyzer/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = tracing.New(nil, "mpl-analyzer/internal/usecase", nil)

func startUsecaseSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, name, opts...)
}
