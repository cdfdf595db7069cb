// Package cache provides the in-memory TTL response cache for the OpenDota
// proxy.
//
// The cache is a process-wide, memory-resident key-value store. Each entry
// carries an absolute expiration instant; expiration is enforced lazily on
// access and by explicit sweeps:
//
// - Get deletes an expired entry on read and reports a miss
// - CleanupExpired sweeps all expired entries in one pass
// - Stats sweeps first, so it never reports an expired key
// - Clear empties the cache and returns the number of entries removed
//
// # Basic Usage
//
//	store := cache.NewStore(logger)
//
//	// Store a response for 30 minutes
//	store.Set("player_profile:123", payload, 30*time.Minute)
//
//	// Read it back
//	value, ok := store.Get("player_profile:123")
//	if !ok {
//		// Cache miss - fetch from OpenDota
//	}
//
// # Background Sweeping
//
// Lazy expiration alone can leave entries for keys that are written once and
// never read again. RunJanitor sweeps on an interval until its context is
// cancelled:
//
//	go store.RunJanitor(ctx, 5*time.Minute)
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - opendota_cache_hits_total - Cache hits
//   - opendota_cache_misses_total - Cache misses
//   - opendota_cache_items - Current number of entries
//   - opendota_cache_evictions_total{reason} - Removals by reason
//
// # Concurrency
//
// All operations are safe for concurrent use from many request goroutines.
// No lock is held across upstream fetches; for concurrent writes to the same
// key the last Set to complete wins.
package cache
