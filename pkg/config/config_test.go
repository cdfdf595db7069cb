package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.OpenDotaBaseURL != "https://api.opendota.com/api" {
		t.Errorf("OpenDotaBaseURL = %q", cfg.OpenDotaBaseURL)
	}
	if cfg.CacheTTL.HeroConstants != 24*time.Hour {
		t.Errorf("HeroConstants TTL = %v, want 24h", cfg.CacheTTL.HeroConstants)
	}
	if cfg.CacheTTL.PlayerProfile != 30*time.Minute {
		t.Errorf("PlayerProfile TTL = %v, want 30m", cfg.CacheTTL.PlayerProfile)
	}
	if cfg.CacheTTL.SearchResults != 5*time.Minute {
		t.Errorf("SearchResults TTL = %v, want 5m", cfg.CacheTTL.SearchResults)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENDOTA_API_KEY", "test-key")
	t.Setenv("CACHE_TTL_PLAYER_PROFILE", "45m")
	t.Setenv("UPSTREAM_REQUESTS_PER_MINUTE", "1200")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.OpenDotaAPIKey != "test-key" {
		t.Errorf("OpenDotaAPIKey = %q", cfg.OpenDotaAPIKey)
	}
	if cfg.CacheTTL.PlayerProfile != 45*time.Minute {
		t.Errorf("PlayerProfile TTL = %v, want 45m", cfg.CacheTTL.PlayerProfile)
	}
	if cfg.UpstreamRequestsPerMinute != 1200 {
		t.Errorf("UpstreamRequestsPerMinute = %d, want 1200", cfg.UpstreamRequestsPerMinute)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if !cfg.LogPretty {
		t.Error("LogPretty should be true")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad duration", key: "CACHE_TTL_SEARCH_RESULTS", value: "five minutes"},
		{name: "bad int", key: "UPSTREAM_REQUESTS_PER_MINUTE", value: "lots"},
		{name: "bad bool", key: "LOG_PRETTY", value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load should fail for %s=%q", tt.key, tt.value)
			}
		})
	}
}
