package ratelimiting

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

type RateLimiter interface {
	Consume(key string) bool
}

type RefillPerSecond int
type BurstSize int

// tokenBucketRateLimiter keeps a token bucket per key. Buckets idle for 30
// minutes are dropped.
type tokenBucketRateLimiter struct {
	buckets         *ttlcache.Cache[string, *rate.Limiter]
	refillPerSecond int
	burstSize       int
}

func NewTokenBucketRateLimiter(refillPerSecond RefillPerSecond, burstSize BurstSize) (RateLimiter, func()) {
	buckets := ttlcache.New[string, *rate.Limiter](
		ttlcache.WithTTL[string, *rate.Limiter](30 * time.Minute),
	)
	go buckets.Start()

	limiter := &tokenBucketRateLimiter{
		buckets:         buckets,
		refillPerSecond: int(refillPerSecond),
		burstSize:       int(burstSize),
	}
	return limiter, buckets.Stop
}

func (l *tokenBucketRateLimiter) Consume(key string) bool {
	bucket, _ := l.buckets.GetOrSet(key, rate.NewLimiter(rate.Limit(l.refillPerSecond), l.burstSize))
	return bucket.Value().Allow()
}

// RequestRateLimiter rate limits HTTP requests by some property of the
// request, like the client IP.
type RequestRateLimiter interface {
	Consume(r *http.Request) bool
	KeyFor(r *http.Request) string
}

type requestBasedRateLimiter struct {
	limiter RateLimiter
	keyFunc func(r *http.Request) string
}

func NewRequestBasedRateLimiter(limiter RateLimiter, keyFunc func(r *http.Request) string) RequestRateLimiter {
	return &requestBasedRateLimiter{limiter: limiter, keyFunc: keyFunc}
}

func (l *requestBasedRateLimiter) Consume(r *http.Request) bool {
	return l.limiter.Consume(l.keyFunc(r))
}

func (l *requestBasedRateLimiter) KeyFor(r *http.Request) string {
	return l.keyFunc(r)
}

// IPKeyFunc keys requests by client IP, trusting X-Forwarded-For when the
// service runs behind a proxy that sets it.
func IPKeyFunc(r *http.Request) string {
	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		// The client IP is the first entry in the comma separated list
		clientIP, _, _ := strings.Cut(forwardedFor, ",")
		return fmt.Sprintf("ip: %s", strings.TrimSpace(clientIP))
	}

	withoutPort := r.RemoteAddr
	if portIndex := strings.IndexByte(r.RemoteAddr, ':'); portIndex != -1 {
		withoutPort = r.RemoteAddr[:portIndex]
	}

	return fmt.Sprintf("ip: %s", withoutPort)
}
