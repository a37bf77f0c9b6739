package app

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bennysakos/searchlight/internal/domain"
	e "github.com/bennysakos/searchlight/internal/errors"
	"github.com/bennysakos/searchlight/internal/logging"
	"github.com/bennysakos/searchlight/internal/strutils"
)

// A side that failed to resolve is nil.
type ComparedPlayers struct {
	Player1 *domain.Player
	Player2 *domain.Player
}

type ComparePlayers func(ctx context.Context, username1, username2 string) (ComparedPlayers, error)

func BuildComparePlayers(getPlayer GetPlayer) ComparePlayers {
	return func(ctx context.Context, username1, username2 string) (ComparedPlayers, error) {
		logger := logging.FromContext(ctx)

		normalized1, err := strutils.NormalizeUsername(username1)
		if err != nil {
			logger.Info("Invalid username", "username", username1, "error", err.Error())
			return ComparedPlayers{}, fmt.Errorf("%w: %s", e.ErrAPIClient, err.Error())
		}
		normalized2, err := strutils.NormalizeUsername(username2)
		if err != nil {
			logger.Info("Invalid username", "username", username2, "error", err.Error())
			return ComparedPlayers{}, fmt.Errorf("%w: %s", e.ErrAPIClient, err.Error())
		}

		if strings.EqualFold(normalized1, normalized2) {
			return ComparedPlayers{}, fmt.Errorf("%w: cannot compare a player with themselves", e.ErrAPIClient)
		}

		var player1, player2 *domain.Player
		var err1, err2 error

		// Both sides resolve or fail on their own. The group only joins the fetches.
		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			player1, err1 = getPlayer(groupCtx, normalized1)
			return nil
		})
		group.Go(func() error {
			player2, err2 = getPlayer(groupCtx, normalized2)
			return nil
		})
		_ = group.Wait()

		if err1 != nil && err2 != nil {
			// NOTE: GetPlayer implementations handle their own error reporting
			return ComparedPlayers{}, fmt.Errorf("could not get either player: %w (%w)", err1, err2)
		}

		return ComparedPlayers{
			Player1: player1,
			Player2: player2,
		}, nil
	}
}
