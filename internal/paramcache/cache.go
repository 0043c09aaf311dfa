package paramcache

import (
	"context"
	"sync"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

// cacheState holds the cached snapshot, its expiry, and the TTL for future
// refreshes behind a mutex. A zero expiry means nothing usable is cached.
type cacheState struct {
	mu     sync.Mutex
	ttl    time.Duration
	params types.SuggestedParams
	expiry time.Time
}

// copyParams clones a parameter snapshot. GenesisHash is the only reference
// field, so it gets its own backing array.
func copyParams(p types.SuggestedParams) types.SuggestedParams {
	cp := p
	if p.GenesisHash != nil {
		cp.GenesisHash = make([]byte, len(p.GenesisHash))
		copy(cp.GenesisHash, p.GenesisHash)
	}
	return cp
}

// SuggestedParams serves the cached snapshot while it is fresh and refetches
// otherwise. Both the stored value and the returned value are private copies,
// so neither a later fetcher mutation nor a caller mutation can corrupt the
// cache.
func (s *service) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	now := s.clock()
	if now.Before(s.state.expiry) {
		return copyParams(s.state.params), nil
	}

	params, err := s.fetcher.SuggestedParams(ctx)
	if err != nil {
		return types.SuggestedParams{}, err
	}

	s.state.params = copyParams(params)
	s.state.expiry = now.Add(s.state.ttl)
	return copyParams(s.state.params), nil
}

// SetSuggestedParams seeds the cache with the given snapshot. A zero until
// expires the seed after the configured TTL.
func (s *service) SetSuggestedParams(params types.SuggestedParams, until time.Time) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if until.IsZero() {
		until = s.clock().Add(s.state.ttl)
	}

	s.state.params = copyParams(params)
	s.state.expiry = until
}

// SetTimeout changes the TTL used by future refreshes. The expiry of an
// already-cached snapshot stays as it is.
func (s *service) SetTimeout(ttl time.Duration) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	s.state.ttl = ttl
}
