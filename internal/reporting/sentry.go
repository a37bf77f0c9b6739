package reporting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/bennysakos/searchlight/internal/config"
	"github.com/bennysakos/searchlight/internal/logging"
)

var uuidRx = regexp.MustCompile(`[0-9a-f]{8}-?([0-9a-f]{4}-?){3}[0-9a-f]{12}`)
var hostRx = regexp.MustCompile(`\[:{0,2}([0-9a-f]{0,4}:?){1,8}\]:\d+`)
var usernameRx = regexp.MustCompile(`(/user/)[\p{L}\p{N}_.-]+"`)

// Errors embed profile URLs and peer addresses. Collapse them so Sentry
// groups by failure mode rather than by player.
func sanitizeError(err string) string {
	err = uuidRx.ReplaceAllString(err, "<uuid>")
	err = hostRx.ReplaceAllString(err, "<host>")
	err = usernameRx.ReplaceAllString(err, `${1}<username>"`)
	return err
}

// Report sends err to Sentry together with the meta stored in ctx. Extra
// key/value pairs can be attached per call.
func Report(ctx context.Context, err error, extras ...map[string]string) {
	if err == nil {
		err = errors.New("No error provided")
	}

	logger := logging.FromContext(ctx)

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		logger.Warn("Failed to get Sentry hub from context", "Error:", err, "Extras:", extras)
		return
	}

	logger.Error(
		"Reporting error to Sentry",
		slog.String("error", err.Error()),
		slog.Any("extras", extras),
	)

	hub.WithScope(func(scope *sentry.Scope) {
		applyMeta(ctx, scope, extras)

		scope.SetFingerprint([]string{"{{ default }}", sanitizeError(err.Error())})
		hub.CaptureException(err)
	})
}

func applyMeta(ctx context.Context, scope *sentry.Scope, extras []map[string]string) {
	meta := MetaFromContext(ctx)

	scope.SetTags(meta.tags)
	for key, value := range meta.extras {
		scope.SetExtra(key, value)
	}
	scope.SetExtra("secondsSinceStart", time.Since(meta.startedAt).Seconds())

	for _, extra := range extras {
		for key, value := range extra {
			scope.SetExtra(key, value)
		}
	}
}

// addMetaMiddleware tags every report from the request with basic request
// info and starts the clock for secondsSinceStart.
func addMetaMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userAgent := r.UserAgent()
		if userAgent == "" {
			userAgent = "<missing>"
		}

		ctx := AddTagsToContext(r.Context(), map[string]string{
			"userAgent":  userAgent,
			"methodPath": fmt.Sprintf("%s %s", r.Method, r.URL.Path),
		})
		ctx = setStartedAtInContext(ctx, time.Now())

		next(w, r.WithContext(ctx))
	}
}

func InitSentryMiddleware(sentryDSN string) (func(http.HandlerFunc) http.HandlerFunc, func(), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              sentryDSN,
		EnableTracing:    true,
		TracesSampleRate: 1.0 / 100.0,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize sentry: %w", err)
	}

	sentryHandler := sentryhttp.New(sentryhttp.Options{})

	middleware := func(next http.HandlerFunc) http.HandlerFunc {
		return sentryHandler.HandleFunc(addMetaMiddleware(next))
	}

	flush := func() {
		sentry.Flush(5 * time.Second)
	}

	return middleware, flush, nil
}

// NewSentryMiddlewareOrMock requires a Sentry DSN outside development. In
// development the middleware silently does nothing when no DSN is set.
func NewSentryMiddlewareOrMock(config config.Config) (func(http.HandlerFunc) http.HandlerFunc, func(), error) {
	if config.SentryDSN() != "" {
		return InitSentryMiddleware(config.SentryDSN())
	}

	if !config.IsDevelopment() {
		return nil, nil, fmt.Errorf("Missing Sentry DSN in non-development environment")
	}

	noop := func(next http.HandlerFunc) http.HandlerFunc {
		return next
	}
	return noop, func() {}, nil
}
