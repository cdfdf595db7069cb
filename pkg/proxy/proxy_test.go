package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotalytics/opendota-proxy/pkg/cache"
)

func newReadThrough(t *testing.T) (*ReadThrough, *cache.Store) {
	t.Helper()
	store := cache.NewStore(zerolog.Nop())
	return NewReadThrough(store, zerolog.Nop()), store
}

func TestFetchOrServe_HitAvoidsFetch(t *testing.T) {
	rt, _ := newReadThrough(t)
	ctx := context.Background()

	var calls atomic.Int64
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		calls.Add(1)
		return json.RawMessage(`{"win": 10}`), nil
	}

	first, err := rt.FetchOrServe(ctx, "player_winloss:123", time.Minute, fetch)
	require.NoError(t, err)

	second, err := rt.FetchOrServe(ctx, "player_winloss:123", time.Minute, fetch)
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load(), "second call within TTL must not hit upstream")
	assert.JSONEq(t, string(first), string(second))
}

func TestFetchOrServe_MissFetchesAndStores(t *testing.T) {
	rt, store := newReadThrough(t)

	value, err := rt.FetchOrServe(context.Background(), "hero_constants", time.Hour, func(ctx context.Context) (json.RawMessage, error) {
		return json.RawMessage(`{"1": {"name": "antimage"}}`), nil
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"1": {"name": "antimage"}}`, string(value))

	cached, ok := store.Get("hero_constants")
	require.True(t, ok, "result should have been stored")
	assert.Equal(t, string(value), string(cached))
}

func TestFetchOrServe_FailedFetchNotCached(t *testing.T) {
	rt, store := newReadThrough(t)
	ctx := context.Background()

	upstreamErr := errors.New("opendota is down")
	var calls atomic.Int64

	fetch := func(ctx context.Context) (json.RawMessage, error) {
		if calls.Add(1) == 1 {
			return nil, upstreamErr
		}
		return json.RawMessage(`{"ok": true}`), nil
	}

	_, err := rt.FetchOrServe(ctx, "player_profile:7", time.Minute, fetch)
	require.ErrorIs(t, err, upstreamErr, "fetch failure must propagate unchanged")

	_, ok := store.Get("player_profile:7")
	assert.False(t, ok, "failed fetch must not write to the cache")

	// The retry reaches upstream again instead of a poisoned entry.
	value, err := rt.FetchOrServe(ctx, "player_profile:7", time.Minute, fetch)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(value))
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetchOrServe_ExpiredEntryRefetched(t *testing.T) {
	rt, store := newReadThrough(t)

	store.Set("search_results:miracle", json.RawMessage(`["stale"]`), -time.Minute)

	var calls atomic.Int64
	value, err := rt.FetchOrServe(context.Background(), "search_results:miracle", time.Minute, func(ctx context.Context) (json.RawMessage, error) {
		calls.Add(1)
		return json.RawMessage(`["fresh"]`), nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load(), "expired entry must not be served")
	assert.JSONEq(t, `["fresh"]`, string(value))
}

func TestFetchOrServe_ConcurrentMisses(t *testing.T) {
	rt, store := newReadThrough(t)

	// No single-flight: every concurrent miss may fetch independently and
	// every call must still return a valid result.
	var calls atomic.Int64
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		calls.Add(1)
		return json.RawMessage(`{"n": 1}`), nil
	}

	var wg sync.WaitGroup
	const workers = 8
	results := make([]json.RawMessage, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = rt.FetchOrServe(context.Background(), "heroes", time.Minute, fetch)
		}(i)
	}
	wg.Wait()

	assert.GreaterOrEqual(t, calls.Load(), int64(1))
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.JSONEq(t, `{"n": 1}`, string(results[i]))
	}

	cached, ok := store.Get("heroes")
	require.True(t, ok)
	assert.JSONEq(t, `{"n": 1}`, string(cached))
}
