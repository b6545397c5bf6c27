package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	obscontext "github.com/zerorisk/claimledger/internal/observability/context"
)

// FromContext returns the global logger enriched with trace, request, and
// hospital identifiers found on the context.
func FromContext(ctx context.Context) *zap.Logger {
	log := zap.L()
	if ctx == nil {
		return log
	}

	fields := make([]zap.Field, 0, 4)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	if requestID := obscontext.RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if hospitalID := obscontext.HospitalIDFromContext(ctx); hospitalID != "" {
		fields = append(fields, zap.String("hospital_id", hospitalID))
	}

	if len(fields) == 0 {
		return log
	}
	return log.With(fields...)
}
