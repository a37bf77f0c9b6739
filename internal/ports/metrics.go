package ports

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type requestMetrics struct {
	count    metric.Int64Counter
	duration metric.Float64Histogram
}

var getRequestMetrics = sync.OnceValue(func() requestMetrics {
	meter := otel.Meter("searchlight/ports")

	count, err := meter.Int64Counter(
		"ports/request_count",
		metric.WithDescription("Total number of requests received"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create request count metric: %w", err))
	}

	duration, err := meter.Float64Histogram(
		"ports/request_duration_seconds",
		metric.WithDescription("Processing time for received requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create request duration metric: %w", err))
	}

	return requestMetrics{count: count, duration: duration}
})

func buildMetricsMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	m := getRequestMetrics()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next(w, r)

			userAgent := r.UserAgent()
			if userAgent == "" {
				userAgent = "<missing>"
			}

			attributes := metric.WithAttributes(
				attribute.String("method", r.Method),
				attribute.String("path", r.URL.Path),
				attribute.String("user_agent", userAgent),
			)

			ctx := r.Context()
			m.count.Add(ctx, 1, attributes)
			m.duration.Record(ctx, time.Since(start).Seconds(), attributes)
		}
	}
}
