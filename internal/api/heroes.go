package api

import (
	"context"
	"encoding/json"
	"net/http"
)

func (s *Server) handleHeroConstants(w http.ResponseWriter, r *http.Request) {
	data, err := s.rt.FetchOrServe(r.Context(), "hero_constants", s.cfg.CacheTTL.HeroConstants, func(ctx context.Context) (json.RawMessage, error) {
		return s.upstream.Get(ctx, "constants/heroes", nil)
	})
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}

func (s *Server) handleItemConstants(w http.ResponseWriter, r *http.Request) {
	data, err := s.rt.FetchOrServe(r.Context(), "item_constants", s.cfg.CacheTTL.ItemConstants, func(ctx context.Context) (json.RawMessage, error) {
		return s.upstream.Get(ctx, "constants/items", nil)
	})
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}

// Hero stats move with the live meta; always fetched fresh.
func (s *Server) handleHeroStats(w http.ResponseWriter, r *http.Request) {
	data, err := s.upstream.Get(r.Context(), "heroStats", nil)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}
