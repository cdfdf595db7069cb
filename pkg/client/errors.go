package client

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable is returned when OpenDota cannot be reached at the
// transport level (no route, connection refused, timeout).
var ErrUpstreamUnavailable = errors.New("opendota unreachable")

// APIError represents a non-2xx response from the OpenDota API. The upstream
// status code and body are preserved so handlers can pass them through.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("opendota %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
