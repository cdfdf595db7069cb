package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheHits tracks reads served from cache
	cacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "opendota_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	// cacheMisses tracks reads that fell through to upstream
	cacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "opendota_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// cacheItems tracks the current number of stored entries
	cacheItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "opendota_cache_items",
			Help: "Current number of entries in the cache",
		},
	)

	// cacheEvictions tracks removals by reason
	cacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opendota_cache_evictions_total",
			Help: "Total number of cache entries removed",
		},
		[]string{"reason"}, // "expired", "cleared"
	)
)
