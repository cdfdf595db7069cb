// Package config loads proxy configuration from environment variables, with
// optional .env file support.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// TTLs holds the cache lifetime for each query class. TTL is configuration
// per class, not hard-coded per call site.
type TTLs struct {
	HeroConstants time.Duration
	ItemConstants time.Duration
	PlayerProfile time.Duration
	PlayerWinLoss time.Duration
	PlayerHeroes  time.Duration
	PlayerMatches time.Duration
	SearchResults time.Duration
}

// Config holds the full proxy configuration.
type Config struct {
	AppName    string
	AppVersion string

	// Port the HTTP server listens on.
	Port string

	// OpenDotaBaseURL is the upstream API root.
	OpenDotaBaseURL string

	// OpenDotaAPIKey is the optional API key for the upstream.
	OpenDotaAPIKey string

	// UpstreamTimeout bounds each upstream request.
	UpstreamTimeout time.Duration

	// UpstreamRequestsPerMinute budgets upstream calls (0 disables).
	UpstreamRequestsPerMinute int

	// CORSOrigins are the origins allowed to call the API.
	CORSOrigins []string

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string

	// LogPretty enables human-readable console output.
	LogPretty bool

	// CacheTTL configures per-class cache lifetimes.
	CacheTTL TTLs

	// JanitorInterval is how often expired entries are swept in the
	// background (0 disables the sweep; lazy expiration still applies).
	JanitorInterval time.Duration
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		AppName:                   "Dota 2 Analytics API",
		AppVersion:                "1.0.0",
		Port:                      "8000",
		OpenDotaBaseURL:           "https://api.opendota.com/api",
		UpstreamTimeout:           30 * time.Second,
		UpstreamRequestsPerMinute: 60,
		CORSOrigins:               []string{"http://localhost:3000"},
		LogLevel:                  "info",
		CacheTTL: TTLs{
			HeroConstants: 24 * time.Hour,
			ItemConstants: 24 * time.Hour,
			PlayerProfile: 30 * time.Minute,
			PlayerWinLoss: time.Hour,
			PlayerHeroes:  2 * time.Hour,
			PlayerMatches: 10 * time.Minute,
			SearchResults: 5 * time.Minute,
		},
		JanitorInterval: 5 * time.Minute,
	}
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present; real environment variables win.
func Load() (Config, error) {
	// Missing .env is fine; env vars alone are a complete configuration.
	_ = godotenv.Load()

	cfg := Default()
	var err error

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.OpenDotaBaseURL = getEnv("OPENDOTA_BASE_URL", cfg.OpenDotaBaseURL)
	cfg.OpenDotaAPIKey = getEnv("OPENDOTA_API_KEY", cfg.OpenDotaAPIKey)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitAndTrim(origins)
	}

	if cfg.LogPretty, err = getBool("LOG_PRETTY", cfg.LogPretty); err != nil {
		return Config{}, err
	}
	if cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", cfg.UpstreamTimeout); err != nil {
		return Config{}, err
	}
	if cfg.UpstreamRequestsPerMinute, err = getInt("UPSTREAM_REQUESTS_PER_MINUTE", cfg.UpstreamRequestsPerMinute); err != nil {
		return Config{}, err
	}
	if cfg.JanitorInterval, err = getDuration("CACHE_JANITOR_INTERVAL", cfg.JanitorInterval); err != nil {
		return Config{}, err
	}

	ttls := []struct {
		env string
		dst *time.Duration
	}{
		{"CACHE_TTL_HERO_CONSTANTS", &cfg.CacheTTL.HeroConstants},
		{"CACHE_TTL_ITEM_CONSTANTS", &cfg.CacheTTL.ItemConstants},
		{"CACHE_TTL_PLAYER_PROFILE", &cfg.CacheTTL.PlayerProfile},
		{"CACHE_TTL_PLAYER_WINLOSS", &cfg.CacheTTL.PlayerWinLoss},
		{"CACHE_TTL_PLAYER_HEROES", &cfg.CacheTTL.PlayerHeroes},
		{"CACHE_TTL_PLAYER_MATCHES", &cfg.CacheTTL.PlayerMatches},
		{"CACHE_TTL_SEARCH_RESULTS", &cfg.CacheTTL.SearchResults},
	}
	for _, t := range ttls {
		if *t.dst, err = getDuration(t.env, *t.dst); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
