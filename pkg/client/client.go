// Package client provides the HTTP client for the OpenDota API with request
// budgeting, error classification, and observability.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Prometheus metrics for upstream OpenDota requests.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opendota_upstream_requests_total",
		Help: "Total OpenDota requests by endpoint and status",
	}, []string{"endpoint", "status"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "opendota_upstream_request_duration_seconds",
		Help:    "OpenDota request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opendota_upstream_errors_total",
		Help: "Total OpenDota errors by class",
	}, []string{"class"}) // "transport", "remote"
)

// maxErrorBody bounds how much of an upstream error body is retained.
const maxErrorBody = 4 << 10

// Config holds the client configuration.
type Config struct {
	// BaseURL is the OpenDota API root (e.g. "https://api.opendota.com/api").
	BaseURL string

	// APIKey is the optional OpenDota API key sent as a Bearer token.
	APIKey string

	// Timeout bounds each upstream request.
	Timeout time.Duration

	// RequestsPerMinute is the upstream request budget. The free OpenDota
	// tier allows 60 requests per minute; <= 0 disables budgeting.
	RequestsPerMinute int
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://api.opendota.com/api",
		Timeout:           30 * time.Second,
		RequestsPerMinute: 60,
	}
}

// Client performs GET requests against the OpenDota API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// New creates a new OpenDota client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		limiter: limiter,
		logger:  log.With().Str("component", "opendota-client").Logger(),
	}, nil
}

// Get performs a GET request to an OpenDota endpoint (e.g. "players/123/wl")
// and returns the raw JSON body.
//
// Transport failures wrap ErrUpstreamUnavailable; non-2xx responses return
// an *APIError preserving the upstream status and body.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	endpoint = strings.Trim(endpoint, "/")

	startTime := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	reqURL := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug().Str("endpoint", endpoint).Msg("OpenDota API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamErrorsTotal.WithLabelValues("transport").Inc()
		upstreamRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("OpenDota request failed")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	upstreamRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		upstreamErrorsTotal.WithLabelValues("remote").Inc()
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("OpenDota API error")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       body,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamErrorsTotal.WithLabelValues("transport").Inc()
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstreamUnavailable, err)
	}

	if !json.Valid(body) {
		upstreamErrorsTotal.WithLabelValues("remote").Inc()
		return nil, fmt.Errorf("invalid JSON from opendota %s", endpoint)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("bytes", len(body)).
		Msg("OpenDota API response received")

	return json.RawMessage(body), nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}
