package cache

import (
	"time"

	"github.com/bennysakos/searchlight/internal/domain"
)

type PlayerCache = Cache[*domain.Player]

func NewPlayerCache(ttl time.Duration) PlayerCache {
	return NewTTLCache[*domain.Player](ttl)
}
