package playerprovider

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bennysakos/searchlight/internal/domain"
	"github.com/bennysakos/searchlight/internal/logging"
	"github.com/bennysakos/searchlight/internal/reporting"
	"github.com/bennysakos/searchlight/internal/strutils"
)

type ratingsPlayerProvider struct {
	ratingsAPI RatingsAPI

	metrics ratingsPlayerProviderMetricsCollection
}

func NewRatingsPlayerProvider(ratingsAPI RatingsAPI) (PlayerProvider, error) {
	meter := otel.Meter("playerprovider/ratings_provider")
	metrics, err := setupRatingsPlayerProviderMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	return &ratingsPlayerProvider{
		ratingsAPI: ratingsAPI,

		metrics: metrics,
	}, nil
}

func (r *ratingsPlayerProvider) GetPlayer(ctx context.Context, username string) (*domain.Player, error) {
	normalized, err := strutils.NormalizeUsername(username)
	if err != nil || normalized != username {
		logging.FromContext(ctx).Error("Username is not normalized", "username", username)
		err := fmt.Errorf("username is not normalized")
		reporting.Report(ctx, err, map[string]string{
			"username": username,
		})
		return nil, err
	}

	pageData, statusCode, queriedAt, err := r.ratingsAPI.GetProfilePage(ctx, username)
	if err != nil {
		// NOTE: RatingsAPI implementations handle their own error reporting
		return nil, fmt.Errorf("failed to get profile page: %w", err)
	}

	player, err := RatingsPageToPlayer(ctx, username, queriedAt, pageData, statusCode)
	if err != nil {
		// NOTE: RatingsPageToPlayer handles its own error reporting
		return nil, fmt.Errorf("failed to convert profile page to player: %w", err)
	}

	r.metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attribute.Bool("got_player", player != nil)))

	return player, nil
}

type ratingsPlayerProviderMetricsCollection struct {
	requestCount metric.Int64Counter
}

func setupRatingsPlayerProviderMetrics(meter metric.Meter) (ratingsPlayerProviderMetricsCollection, error) {
	requestCount, err := meter.Int64Counter("playerprovider/ratings_provider/returned_players")
	if err != nil {
		return ratingsPlayerProviderMetricsCollection{}, fmt.Errorf("failed to create metric: %w", err)
	}

	return ratingsPlayerProviderMetricsCollection{
		requestCount: requestCount,
	}, nil
}
