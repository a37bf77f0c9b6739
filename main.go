package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/bennysakos/searchlight/internal/adapters/cache"
	"github.com/bennysakos/searchlight/internal/adapters/playerprovider"
	"github.com/bennysakos/searchlight/internal/app"
	"github.com/bennysakos/searchlight/internal/config"
	"github.com/bennysakos/searchlight/internal/logging"
	"github.com/bennysakos/searchlight/internal/ports"
	"github.com/bennysakos/searchlight/internal/ratelimiting"
	"github.com/bennysakos/searchlight/internal/reporting"
	"github.com/bennysakos/searchlight/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	// Bundled roots so the container image doesn't need a cert store
	_ "golang.org/x/crypto/x509roots/fallback"
)

// TODO: Put in config
const PROD_DOMAIN_SUFFIX = "searchlight-stats.com"
const STAGING_DOMAIN_SUFFIX = "searchlight-web.pages.dev"

// The ratings site is a small fan-run service. All outbound profile fetches
// share this budget.
const UPSTREAM_REQUEST_LIMIT = 30
const UPSTREAM_REQUEST_WINDOW = 1 * time.Minute

func main() {
	ctx := context.Background()

	instanceID := uuid.New().String()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}

	if config.GoogleCloudProject() != "" {
		tracingHandler := logging.NewGoogleCloudTracingLogHandler(slog.NewJSONHandler(os.Stdout, nil), config.GoogleCloudProject())
		logger = slog.New(tracingHandler).With("instanceID", instanceID)
	}
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	otelShutdown, err := telemetry.SetupOTelSDK(ctx, "searchlight")
	if err != nil {
		fail("Failed to initialize OpenTelemetry", "error", err.Error())
	}
	defer func() {
		err := otelShutdown(context.Background())
		if err != nil {
			logger.Error("Failed to shut down OpenTelemetry", "error", err.Error())
		}
	}()
	logger.Info("Initialized OpenTelemetry")

	playerCache := cache.NewPlayerCache(1 * time.Minute)

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   10 * time.Second,
	}

	upstreamLimiter := ratelimiting.NewWindowLimitRequestLimiter(UPSTREAM_REQUEST_LIMIT, UPSTREAM_REQUEST_WINDOW)

	ratingsAPI, err := playerprovider.NewRatingsAPI(httpClient, config.RatingsBaseURL(), upstreamLimiter)
	if err != nil {
		fail("Failed to initialize ratings API", "error", err.Error())
	}
	logger.Info("Initialized ratings API")

	playerProvider, err := playerprovider.NewRatingsPlayerProvider(ratingsAPI)
	if err != nil {
		fail("Failed to initialize player provider", "error", err.Error())
	}

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	allowedOrigins, err := ports.NewDomainSuffixes(PROD_DOMAIN_SUFFIX, STAGING_DOMAIN_SUFFIX)
	if err != nil {
		fail("Failed to initialize allowed origins", "error", err.Error())
	}

	getPlayer := app.BuildGetPlayerWithCache(playerCache, playerProvider)
	comparePlayers := app.BuildComparePlayers(getPlayer)
	getRatingsStatus := app.BuildGetRatingsStatus(ratingsAPI)

	http.HandleFunc(
		"OPTIONS /v1/player",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/player",
		ports.MakeGetPlayerHandler(
			getPlayer,
			allowedOrigins,
			logger.With("port", "player"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"OPTIONS /v1/compare",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/compare",
		ports.MakeComparePlayersHandler(
			comparePlayers,
			allowedOrigins,
			logger.With("port", "compare"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"OPTIONS /v1/status",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/status",
		ports.MakeGetStatusHandler(
			getRatingsStatus,
			allowedOrigins,
			logger.With("port", "status"),
			sentryMiddleware,
		),
	)

	logger.Info("Init complete")
	err = http.ListenAndServe(fmt.Sprintf(":%s", config.Port()), nil)
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
