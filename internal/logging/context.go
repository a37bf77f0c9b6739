package logging

import (
	"context"
	"log/slog"
	"os"
)

type requestLoggerContextKey struct{}

func newFallbackLogger() *slog.Logger {
	fallback := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return fallback.With(slog.String("logger", "fallback"))
}

// FromContext returns the request-scoped logger, or a fallback logger when
// the context does not carry one.
func FromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(requestLoggerContextKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return newFallbackLogger()
	}
	return logger
}

func AddToContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, requestLoggerContextKey{}, logger)
}

// AddMetaToContext attaches args to every record logged through the logger in
// ctx from here on.
func AddMetaToContext(ctx context.Context, args ...slog.Attr) context.Context {
	anyArgs := make([]any, 0, len(args))
	for _, arg := range args {
		anyArgs = append(anyArgs, arg)
	}

	return AddToContext(ctx, FromContext(ctx).With(anyArgs...))
}
