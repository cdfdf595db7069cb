// Package cache provides the in-memory TTL response cache backing the
// OpenDota proxy.
package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Entry represents a cached upstream response.
type Entry struct {
	// Value is the raw JSON payload as received from OpenDota.
	Value json.RawMessage

	// ExpiresAt is the absolute expiration instant. It is never mutated in
	// place; a new Set replaces the entry wholesale.
	ExpiresAt time.Time
}

// IsExpired returns true if the entry has expired at time now.
func (e Entry) IsExpired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Stats is a point-in-time snapshot of live cache contents.
type Stats struct {
	// TotalItems is the number of live entries.
	TotalItems int `json:"total_items"`

	// Items maps each live cache key to its expiration time (RFC 3339).
	Items map[string]string `json:"items"`
}

// Store is a concurrency-safe in-memory key-value cache with per-entry TTL.
//
// Expiration is lazy: an expired entry may linger until the next Get,
// CleanupExpired, or Stats call touches it, but is never returned as valid
// data. One Store is created at process start and shared by all request
// handlers; it holds no lock while callers fetch from upstream.
type Store struct {
	mu      sync.Mutex
	entries map[string]Entry
	logger  zerolog.Logger
}

// NewStore creates an empty cache store.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		entries: make(map[string]Entry),
		logger:  logger.With().Str("component", "cache").Logger(),
	}
}

// Get retrieves the value for key. The second return value reports whether
// the key was present and live. An expired entry is deleted as a side effect
// and reported as a miss. Absence is a normal outcome, not an error.
func (s *Store) Get(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		cacheMisses.Inc()
		s.logger.Debug().Str("key", key).Msg("Cache miss")
		return nil, false
	}

	if entry.IsExpired(time.Now()) {
		delete(s.entries, key)
		cacheItems.Set(float64(len(s.entries)))
		cacheEvictions.WithLabelValues("expired").Inc()
		cacheMisses.Inc()
		s.logger.Debug().Str("key", key).Msg("Cache expired")
		return nil, false
	}

	cacheHits.Inc()
	s.logger.Debug().Str("key", key).Msg("Cache hit")
	return entry.Value, true
}

// Set unconditionally inserts or overwrites the entry for key with
// expiration now + ttl. A zero or negative ttl is legal and yields an entry
// that is already expired on the next read.
func (s *Store) Set(key string, value json.RawMessage, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = Entry{
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
	cacheItems.Set(float64(len(s.entries)))
	s.logger.Debug().Str("key", key).Dur("ttl", ttl).Msg("Cache set")
}

// Clear removes all entries and returns the number removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.entries)
	s.entries = make(map[string]Entry)
	cacheItems.Set(0)
	cacheEvictions.WithLabelValues("cleared").Add(float64(count))
	s.logger.Info().Int("entries_removed", count).Msg("Cache cleared")
	return count
}

// CleanupExpired removes every entry whose expiration has passed and returns
// the number removed. Idempotent: an immediate second call returns 0 unless
// time has advanced past further entries' expirations.
func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleanupLocked()
}

// cleanupLocked sweeps expired entries. Caller must hold s.mu.
func (s *Store) cleanupLocked() int {
	now := time.Now()
	removed := 0
	for key, entry := range s.entries {
		if entry.IsExpired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	if removed > 0 {
		cacheItems.Set(float64(len(s.entries)))
		cacheEvictions.WithLabelValues("expired").Add(float64(removed))
		s.logger.Info().Int("entries_removed", removed).Msg("Cache cleanup")
	}
	return removed
}

// Stats sweeps expired entries and returns a snapshot of what remains. The
// count and listing reflect only live entries; an expired key never appears.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupLocked()

	items := make(map[string]string, len(s.entries))
	for key, entry := range s.entries {
		items[key] = entry.ExpiresAt.Format(time.RFC3339)
	}
	return Stats{
		TotalItems: len(s.entries),
		Items:      items,
	}
}
