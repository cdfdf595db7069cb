// Package api wires the proxy's HTTP surface: proxied OpenDota routes, the
// cache admin endpoints, and service plumbing (health, metrics, CORS).
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/dotalytics/opendota-proxy/pkg/cache"
	"github.com/dotalytics/opendota-proxy/pkg/client"
	"github.com/dotalytics/opendota-proxy/pkg/config"
	"github.com/dotalytics/opendota-proxy/pkg/proxy"
)

// apiPrefix is the mount point for proxied OpenDota routes.
const apiPrefix = "/api/v1/opendota_proxy"

// Server holds the handlers' shared collaborators.
type Server struct {
	cfg      config.Config
	cache    *cache.Store
	rt       *proxy.ReadThrough
	upstream *client.Client
	logger   zerolog.Logger
}

// NewServer creates the API server around one shared cache store and
// upstream client.
func NewServer(cfg config.Config, store *cache.Store, upstream *client.Client, logger zerolog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		cache:    store,
		rt:       proxy.NewReadThrough(store, logger),
		upstream: upstream,
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Players
	mux.HandleFunc("GET "+apiPrefix+"/players/{account_id}", s.handlePlayerProfile)
	mux.HandleFunc("GET "+apiPrefix+"/players/{account_id}/wl", s.handlePlayerWinLoss)
	mux.HandleFunc("GET "+apiPrefix+"/players/{account_id}/totals", s.handlePlayerTotals)
	mux.HandleFunc("GET "+apiPrefix+"/players/{account_id}/heroes", s.handlePlayerHeroes)
	mux.HandleFunc("GET "+apiPrefix+"/players/{account_id}/matches", s.handlePlayerMatches)
	mux.HandleFunc("GET "+apiPrefix+"/search", s.handleSearch)

	// Heroes and constants
	mux.HandleFunc("GET "+apiPrefix+"/constants/heroes", s.handleHeroConstants)
	mux.HandleFunc("GET "+apiPrefix+"/constants/items", s.handleItemConstants)
	mux.HandleFunc("GET "+apiPrefix+"/heroStats", s.handleHeroStats)

	// Matches
	mux.HandleFunc("GET "+apiPrefix+"/matches/{match_id}", s.handleMatchDetails)

	// Cache administration
	mux.HandleFunc("GET "+apiPrefix+"/cache/stats", s.handleCacheStats)
	mux.HandleFunc("DELETE "+apiPrefix+"/cache/clear", s.handleCacheClear)

	// Service plumbing
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return corsMiddleware(s.cfg.CORSOrigins, mux)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": s.cfg.AppName,
		"version": s.cfg.AppVersion,
		"status":  "operational",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.cfg.AppVersion,
	})
}
