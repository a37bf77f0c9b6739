package logging

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// cloudTraceHandler decorates log records with the fields Google Cloud
// Logging uses to associate logs with the active trace/span.
// https://docs.cloud.google.com/logging/docs/agent/logging/configuration#special-fields
type cloudTraceHandler struct {
	inner   slog.Handler
	project string
}

// NewGoogleCloudTracingLogHandler wraps inner so that records logged with the
// *Context slog methods carry the active trace and span.
func NewGoogleCloudTracingLogHandler(inner slog.Handler, project string) *cloudTraceHandler {
	return &cloudTraceHandler{inner: inner, project: project}
}

func (h *cloudTraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *cloudTraceHandler) Handle(ctx context.Context, r slog.Record) error {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return h.inner.Handle(ctx, r)
	}

	r.AddAttrs(
		slog.String("logging.googleapis.com/trace", fmt.Sprintf("projects/%s/traces/%s", h.project, sc.TraceID())),
		slog.String("logging.googleapis.com/spanId", sc.SpanID().String()),
		slog.Bool("logging.googleapis.com/trace_sampled", sc.TraceFlags().IsSampled()),
	)
	return h.inner.Handle(ctx, r)
}

func (h *cloudTraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewGoogleCloudTracingLogHandler(h.inner.WithAttrs(attrs), h.project)
}

func (h *cloudTraceHandler) WithGroup(name string) slog.Handler {
	return NewGoogleCloudTracingLogHandler(h.inner.WithGroup(name), h.project)
}

var _ slog.Handler = (*cloudTraceHandler)(nil)
