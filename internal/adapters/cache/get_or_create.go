package cache

import (
	"context"
	"fmt"

	"github.com/bennysakos/searchlight/internal/logging"
)

// GetOrCreate returns the cached data for key, or calls create to make it.
// Concurrent calls for the same key share a single create: the first caller
// claims the key and the rest wait for its result. The returned bool reports
// whether this call ran create.
func GetOrCreate[T any](ctx context.Context, cache Cache[T], key string, create func() (T, error)) (T, bool, error) {
	claimed := false
	set := false
	// A claim that never gets set is removed so other callers can try again
	defer func() {
		if claimed && !set {
			cache.delete(key)
		}
	}()

	for {
		hit := cache.getOrClaim(key)

		if hit.claimed {
			claimed = true

			logging.FromContext(ctx).InfoContext(ctx, "Getting player stats", "cache", "miss")

			data, err := create()
			if err != nil {
				var empty T
				return empty, false, fmt.Errorf("failed to create cache entry: %w", err)
			}

			cache.set(key, data)
			set = true

			return data, true, nil
		}

		if hit.valid {
			logging.FromContext(ctx).InfoContext(ctx, "Getting player stats", "cache", "hit")
			return hit.data, false, nil
		}

		// Someone else holds the claim. Wait for them to store their result.
		logging.FromContext(ctx).InfoContext(ctx, "Waiting for cache")
		cache.wait()
	}
}
