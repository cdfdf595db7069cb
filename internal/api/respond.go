package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dotalytics/opendota-proxy/pkg/client"
)

// detail mirrors the error payload shape of the original service.
type detail struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRawJSON writes an already-encoded JSON payload.
func writeRawJSON(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeDetail(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, detail{Detail: fmt.Sprintf(format, args...)})
}

// writeUpstreamError maps a fetch failure onto the response. Remote errors
// pass the upstream status and body through; transport failures become 503.
func writeUpstreamError(w http.ResponseWriter, err error) {
	if apiErr, ok := client.AsAPIError(err); ok {
		writeDetail(w, apiErr.StatusCode, "Error from OpenDota API: %s", apiErr.Body)
		return
	}
	if errors.Is(err, client.ErrUpstreamUnavailable) {
		writeDetail(w, http.StatusServiceUnavailable, "Could not connect to OpenDota API: %v", err)
		return
	}
	writeDetail(w, http.StatusInternalServerError, "An unexpected error occurred: %v", err)
}
