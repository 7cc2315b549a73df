package cache

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// LoadFunc computes the value for a key on a miss.
type LoadFunc func(ctx context.Context) ([]byte, error)

// Memo serves values from a Cache and computes them on a miss.
//
// Concurrent misses for the same key share a single LoadFunc call. Load
// errors are never cached. Cache backend errors are returned to the caller.
type Memo struct {
	cache  Cache
	policy Policy
	group  singleflight.Group
}

// NewMemo creates a memoizer over c. A nil c disables caching.
func NewMemo(c Cache, policy Policy) *Memo {
	return &Memo{cache: c, policy: policy}
}

// Enabled reports whether values are read from and written to the cache.
func (m *Memo) Enabled() bool {
	return m.cache != nil && m.policy.ShouldCache()
}

// Policy returns the caching policy.
func (m *Memo) Policy() Policy {
	return m.policy
}

// Do returns the cached value for key, or calls load and caches its result.
// With refresh set the cache is not read, load always runs, and the new value
// replaces the cached one. hit reports whether the value came from the cache.
func (m *Memo) Do(ctx context.Context, key string, refresh bool, load LoadFunc) (value []byte, hit bool, err error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}

	if m.Enabled() && !refresh {
		cached, ok, err := m.cache.Get(ctx, key)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return cached, true, nil
		}
	}

	// Forced refreshes never join a load that started from a miss.
	flightKey := key
	if refresh {
		flightKey = key + "#refresh"
	}

	v, err, _ := m.group.Do(flightKey, func() (any, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if m.Enabled() {
			if err := m.cache.Set(ctx, key, loaded, m.policy.EffectiveTTL(0)); err != nil {
				return nil, err
			}
		}
		return loaded, nil
	})
	if err != nil {
		return nil, false, err
	}

	return v.([]byte), false, nil
}

// Invalidate removes the cached value for key.
func (m *Memo) Invalidate(ctx context.Context, key string) error {
	if m.cache == nil {
		return nil
	}
	if err := m.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("cache: invalidate %q: %w", key, err)
	}
	return nil
}
