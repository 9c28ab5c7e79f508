// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter paces interactions with a page.
//
// Keys are page URLs; pages served from the same origin share one budget,
// so switching tabs on the registry is throttled no matter which browser
// session does it.
type RateLimiter interface {
	// Wait blocks until an interaction with the page at pageURL can proceed.
	// If the context is cancelled first, an error is returned.
	Wait(ctx context.Context, pageURL string) error

	// Allow reports whether an interaction can proceed immediately.
	Allow(pageURL string) bool
}

// OriginLimiter keeps one token bucket per page origin.
type OriginLimiter struct {
	limiters  map[string]*rate.Limiter
	mu        sync.Mutex
	perOrigin rate.Limit
	burst     int
}

// NewOriginLimiter creates a limiter allowing perSecond interactions per origin.
func NewOriginLimiter(perSecond float64, burst int) *OriginLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &OriginLimiter{
		limiters:  make(map[string]*rate.Limiter),
		perOrigin: rate.Limit(perSecond),
		burst:     burst,
	}
}

// Wait blocks until the origin of pageURL has a token available.
func (l *OriginLimiter) Wait(ctx context.Context, pageURL string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.limiter(origin(pageURL)).Wait(ctx)
}

// Allow takes a token for the origin of pageURL if one is available.
func (l *OriginLimiter) Allow(pageURL string) bool {
	return l.limiter(origin(pageURL)).Allow()
}

func (l *OriginLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.perOrigin, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// origin reduces a page URL to scheme://host. Local files and unparsable
// URLs collapse to their scheme, or to "" when there is none.
func origin(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	if u.Host == "" {
		return u.Scheme
	}
	return u.Scheme + "://" + u.Host
}
