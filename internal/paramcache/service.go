// Package paramcache memoizes the ledger's suggested transaction parameters
// for a short window, so several transactions built in quick succession do
// not each pay a network round trip. Reads hand out defensive copies and the
// cache invalidates purely by time.
package paramcache

import (
	"context"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

// DefaultTTL is how long a fetched parameter snapshot stays fresh unless a
// different timeout is configured.
const DefaultTTL = 3 * time.Second

// Fetcher supplies fresh suggested parameters from the ledger.
type Fetcher interface {
	SuggestedParams(ctx context.Context) (types.SuggestedParams, error)
}

// Service is the suggested-parameters cache.
type Service interface {
	// SuggestedParams returns a copy of the cached parameters when they are
	// still fresh, and otherwise fetches, stores, and returns a copy of a new
	// snapshot. Mutating the returned value never affects the cache.
	SuggestedParams(ctx context.Context) (types.SuggestedParams, error)

	// SetSuggestedParams seeds the cache manually. The snapshot is served
	// until the given expiry; a zero until means now plus the configured
	// timeout.
	SetSuggestedParams(params types.SuggestedParams, until time.Time)

	// SetTimeout changes the TTL applied to future refreshes. An expiry
	// already in force is not rewritten.
	SetTimeout(ttl time.Duration)
}

// config holds the optional settings of the cache.
type config struct {
	ttl   time.Duration
	clock func() time.Time
}

// Option configures the cache.
type Option func(*config)

// WithTTL sets the initial freshness window. Default: DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// WithClock replaces the time source, letting tests control expiry.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// service is the concrete implementation of the Service interface.
type service struct {
	fetcher Fetcher
	clock   func() time.Time

	state *cacheState
}

// Ensure compile-time compliance with the Service interface.
var _ Service = (*service)(nil)

// New creates a cache over the given fetcher. The cache starts empty and is
// populated lazily on the first read.
func New(fetcher Fetcher, opts ...Option) *service {
	cfg := config{
		ttl:   DefaultTTL,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		fetcher: fetcher,
		clock:   cfg.clock,
		state:   &cacheState{ttl: cfg.ttl},
	}
}
