package api

import (
	"net/http"
)

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cache.Stats())
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	count := s.cache.Clear()
	writeJSON(w, http.StatusOK, map[string]any{
		"message":         "Cache cleared successfully",
		"entries_removed": count,
	})
}
