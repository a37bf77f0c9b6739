package ports

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bennysakos/searchlight/internal/app"
	e "github.com/bennysakos/searchlight/internal/errors"
	"github.com/bennysakos/searchlight/internal/logging"
	"github.com/bennysakos/searchlight/internal/ratelimiting"
	"github.com/bennysakos/searchlight/internal/reporting"
)

func MakeComparePlayersHandler(
	comparePlayers app.ComparePlayers,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	ipLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(
		ratelimiting.RefillPerSecond(4),
		ratelimiting.BurstSize(240),
	)
	ipRateLimiter := ratelimiting.NewRequestBasedRateLimiter(
		ipLimiter,
		ratelimiting.IPKeyFunc,
	)

	makeOnLimitExceeded := func(rateLimiter ratelimiting.RequestRateLimiter) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := logging.FromContext(ctx)

			statusCode := writeErrorResponse(ctx, w, e.ErrRatelimitExceeded)

			logger.Info("Returning response", "statusCode", statusCode, "reason", "ratelimit exceeded", "key", rateLimiter.KeyFor(r))
		}
	}

	middleware := ComposeMiddlewares(
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		BuildCORSMiddleware(allowedOrigins),
		NewRateLimitMiddleware(ipRateLimiter, makeOnLimitExceeded(ipRateLimiter)),
		buildMetricsMiddleware(),
	)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		username1 := r.URL.Query().Get("player1")
		username2 := r.URL.Query().Get("player2")

		ctx = logging.AddMetaToContext(ctx,
			slog.String("player1", username1),
			slog.String("player2", username2),
		)
		logger := logging.FromContext(ctx)

		ctx = reporting.AddExtrasToContext(ctx,
			map[string]string{
				"player1": username1,
				"player2": username2,
			},
		)

		compared, err := comparePlayers(ctx, username1, username2)
		if err != nil {
			// NOTE: ComparePlayers implementations handle their own error reporting
			logger.Error("Error comparing players", "error", err)
			statusCode := writeErrorResponse(ctx, w, err)
			logger.Info("Returning response", "statusCode", statusCode, "reason", "error")
			return
		}

		responseData, err := ComparedPlayersToResponseData(compared)
		if err != nil {
			logger.Error("Failed to convert compared players to response", "error", err)

			err = fmt.Errorf("failed to convert compared players to response: %w", err)
			reporting.Report(ctx, err)

			statusCode := writeErrorResponse(ctx, w, err)
			logger.Info("Returning response", "statusCode", statusCode, "reason", "error")
			return
		}

		logger.Info("Got compared players", "contentLength", len(responseData), "statusCode", 200)

		statusCode := 200
		logger.Info("Returning response", "statusCode", statusCode, "reason", "success")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(responseData)
	}

	return middleware(handler)
}
