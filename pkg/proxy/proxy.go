// Package proxy implements the fetch-or-serve policy that wraps every
// proxied OpenDota call with the response cache.
package proxy

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/dotalytics/opendota-proxy/pkg/cache"
)

// FetchFunc fetches fresh data from upstream on a cache miss.
type FetchFunc func(ctx context.Context) (json.RawMessage, error)

// ReadThrough serves cached data when live and falls back to an upstream
// fetch otherwise. One instance is shared by all route handlers.
type ReadThrough struct {
	cache  *cache.Store
	logger zerolog.Logger
}

// NewReadThrough creates a read-through accessor over the given store.
func NewReadThrough(store *cache.Store, logger zerolog.Logger) *ReadThrough {
	return &ReadThrough{
		cache:  store,
		logger: logger.With().Str("component", "read-through").Logger(),
	}
}

// FetchOrServe returns the data for key, using the cache as a read-through
// layer. On a hit the cached value is returned and upstream is not
// consulted. On a miss, fetch is invoked; a successful result is stored
// with the given ttl and returned, a failure is propagated unchanged and
// never written to the cache.
//
// No cache lock is held while fetch is in flight. Two concurrent misses on
// the same key both fetch; the second Set overwrites the first.
func (rt *ReadThrough) FetchOrServe(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (json.RawMessage, error) {
	if value, ok := rt.cache.Get(key); ok {
		return value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		// A failed fetch must never poison the cache: the next call gets
		// its own shot at upstream.
		rt.logger.Warn().Err(err).Str("key", key).Msg("Upstream fetch failed")
		return nil, err
	}

	rt.cache.Set(key, value, ttl)
	return value, nil
}
