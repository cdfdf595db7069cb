package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// pathID parses a positive integer path value, answering 422 on bad input.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		writeDetail(w, http.StatusUnprocessableEntity, "%s must be a positive integer", name)
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter within [min, max].
func queryInt(r *http.Request, name string, fallback, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, fmt.Errorf("%s must be an integer between %d and %d", name, min, max)
	}
	return n, nil
}

func (s *Server) handlePlayerProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}

	key := fmt.Sprintf("player_profile:%d", accountID)
	data, err := s.rt.FetchOrServe(r.Context(), key, s.cfg.CacheTTL.PlayerProfile, func(ctx context.Context) (json.RawMessage, error) {
		return s.upstream.Get(ctx, fmt.Sprintf("players/%d", accountID), nil)
	})
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}

func (s *Server) handlePlayerWinLoss(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}

	key := fmt.Sprintf("player_winloss:%d", accountID)
	data, err := s.rt.FetchOrServe(r.Context(), key, s.cfg.CacheTTL.PlayerWinLoss, func(ctx context.Context) (json.RawMessage, error) {
		return s.upstream.Get(ctx, fmt.Sprintf("players/%d/wl", accountID), nil)
	})
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}

// Totals are per-request aggregates; always fetched fresh.
func (s *Server) handlePlayerTotals(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}

	data, err := s.upstream.Get(r.Context(), fmt.Sprintf("players/%d/totals", accountID), nil)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}

func (s *Server) handlePlayerHeroes(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}

	key := fmt.Sprintf("player_heroes:%d", accountID)
	data, err := s.rt.FetchOrServe(r.Context(), key, s.cfg.CacheTTL.PlayerHeroes, func(ctx context.Context) (json.RawMessage, error) {
		return s.upstream.Get(ctx, fmt.Sprintf("players/%d/heroes", accountID), nil)
	})
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}

func (s *Server) handlePlayerMatches(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", 20, 1, 100)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}
	offset, err := queryInt(r, "offset", 0, 0, 1<<30)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}

	// The page is part of the identity: each limit/offset window is its own
	// short-lived entry.
	key := fmt.Sprintf("player_matches:%d:%d:%d", accountID, limit, offset)
	data, err := s.rt.FetchOrServe(r.Context(), key, s.cfg.CacheTTL.PlayerMatches, func(ctx context.Context) (json.RawMessage, error) {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(limit))
		params.Set("offset", strconv.Itoa(offset))
		return s.upstream.Get(ctx, fmt.Sprintf("players/%d/matches", accountID), params)
	})
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	// A blank query short-circuits: no cache, no upstream.
	if q == "" {
		writeRawJSON(w, http.StatusOK, json.RawMessage(`[]`))
		return
	}

	key := "search_results:" + q
	data, err := s.rt.FetchOrServe(r.Context(), key, s.cfg.CacheTTL.SearchResults, func(ctx context.Context) (json.RawMessage, error) {
		params := url.Values{}
		params.Set("q", q)
		return s.upstream.Get(ctx, "search", params)
	})
	if err != nil {
		// Search degrades to an empty result set rather than surfacing the
		// upstream failure.
		s.logger.Error().Err(err).Str("query", q).Msg("Player search failed")
		writeRawJSON(w, http.StatusOK, json.RawMessage(`[]`))
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}
