package cache

import (
	"context"
	"time"
)

// RunJanitor sweeps expired entries every interval until ctx is cancelled.
// It blocks; run it in its own goroutine. An interval <= 0 disables
// sweeping and returns immediately (lazy expiration still applies).
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	s.logger.Info().Dur("interval", interval).Msg("Cache janitor started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Cache janitor stopped")
			return
		case <-ticker.C:
			s.CleanupExpired()
		}
	}
}
