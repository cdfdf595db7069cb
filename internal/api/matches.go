package api

import (
	"fmt"
	"net/http"
)

// Match details are high-cardinality and immutable once parsed; caching them
// would fill the store with entries read at most once, so they are always
// fetched.
func (s *Server) handleMatchDetails(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(w, r, "match_id")
	if !ok {
		return
	}

	data, err := s.upstream.Get(r.Context(), fmt.Sprintf("matches/%d", matchID), nil)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}
