package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/bennysakos/searchlight/internal/adapters/cache"
	"github.com/bennysakos/searchlight/internal/adapters/playerprovider"
	"github.com/bennysakos/searchlight/internal/domain"
	e "github.com/bennysakos/searchlight/internal/errors"
	"github.com/bennysakos/searchlight/internal/logging"
	"github.com/bennysakos/searchlight/internal/strutils"
)

type GetPlayer func(ctx context.Context, username string) (*domain.Player, error)

func BuildGetPlayerWithCache(playerCache cache.PlayerCache, provider playerprovider.PlayerProvider) GetPlayer {
	return func(ctx context.Context, username string) (*domain.Player, error) {
		normalized, err := strutils.NormalizeUsername(username)
		if err != nil {
			logging.FromContext(ctx).Info("Invalid username", "username", username, "error", err.Error())
			return nil, fmt.Errorf("%w: %s", e.ErrAPIClient, err.Error())
		}

		// Lookups are case-insensitive, so all casings share one entry
		cacheKey := strings.ToLower(normalized)

		player, _, err := cache.GetOrCreate(ctx, playerCache, cacheKey, func() (*domain.Player, error) {
			return provider.GetPlayer(ctx, normalized)
		})
		if err != nil {
			// NOTE: GetOrCreate only returns an error if create() fails.
			// PlayerProvider implementations handle their own error reporting
			return nil, fmt.Errorf("failed to cache.GetOrCreate player data: %w", err)
		}

		return player, nil
	}
}
