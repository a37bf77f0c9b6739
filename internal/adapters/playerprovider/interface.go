package playerprovider

import (
	"context"

	"github.com/bennysakos/searchlight/internal/domain"
)

type PlayerProvider interface {
	// Raises domain.ErrPlayerNotFound if the ratings site has no profile for the given username
	//
	// Raises domain.ErrTemporarilyUnavailable if the provider implementation receives an error believed to be intermittent. The call may be retried later.
	GetPlayer(ctx context.Context, username string) (*domain.Player, error)
}
