package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parsume/internal/errors"
)

func TestRateLimiterAllowRespectsBurst(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)
	limiter := NewRateLimiter(60, time.Minute, 2, logger)
	defer limiter.Close()

	if !limiter.Allow("client-a") {
		t.Fatal("first request should be allowed")
	}
	if !limiter.Allow("client-a") {
		t.Fatal("second request within burst should be allowed")
	}
	if limiter.Allow("client-a") {
		t.Error("third immediate request should exceed the burst capacity")
	}

	// Independent keys have their own buckets
	if !limiter.Allow("client-b") {
		t.Error("a different key should not be affected")
	}
}

func TestRateLimiterGetStats(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)
	limiter := NewRateLimiter(120, time.Minute, 5, logger)
	defer limiter.Close()

	limiter.Allow("key-1")
	limiter.Allow("key-2")

	stats := limiter.GetStats()
	if stats["active_limiters"] != 2 {
		t.Errorf("active_limiters = %v, want 2", stats["active_limiters"])
	}
	if stats["burst_capacity"] != 5 {
		t.Errorf("burst_capacity = %v, want 5", stats["burst_capacity"])
	}
	if stats["rate_per_minute"] != 120.0 {
		t.Errorf("rate_per_minute = %v, want 120", stats["rate_per_minute"])
	}
}

func TestRateLimiterCleanupEvictsStaleKeys(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)
	limiter := NewRateLimiter(60, time.Minute, 1, logger)
	defer limiter.Close()

	limiter.Allow("stale")
	limiter.mu.Lock()
	limiter.lastSeen["stale"] = time.Now().Add(-time.Hour)
	limiter.mu.Unlock()

	limiter.cleanup(10 * time.Minute)

	limiter.mu.Lock()
	_, exists := limiter.limiters["stale"]
	limiter.mu.Unlock()
	if exists {
		t.Error("stale limiter should have been evicted")
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		byAPIKey bool
		byIP     bool
		headers  map[string]string
		remote   string
		want     string
	}{
		{
			name:     "api key header",
			byAPIKey: true,
			headers:  map[string]string{"X-API-Key": "secret-key"},
			want:     "api:secret-key",
		},
		{
			name:     "bearer token fallback",
			byAPIKey: true,
			headers:  map[string]string{"Authorization": "Bearer token-123"},
			want:     "api:token-123",
		},
		{
			name:   "by ip",
			byIP:   true,
			remote: "192.0.2.10:54321",
			want:   "ip:192.0.2.10",
		},
		{
			name:     "api key preferred over ip",
			byAPIKey: true,
			byIP:     true,
			headers:  map[string]string{"X-API-Key": "abc"},
			remote:   "192.0.2.10:54321",
			want:     "api:abc",
		},
		{
			name:     "no key available falls back to ip when enabled",
			byAPIKey: true,
			byIP:     true,
			remote:   "192.0.2.10:54321",
			want:     "ip:192.0.2.10",
		},
		{
			name: "both disabled",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/parse", nil)
			if tt.remote != "" {
				r.RemoteAddr = tt.remote
			}
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			got := getRateLimitKey(r, tt.byAPIKey, tt.byIP)
			if got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "x-forwarded-for single",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.5"},
			remote:  "10.0.0.1:1234",
			want:    "203.0.113.5",
		},
		{
			name:    "x-forwarded-for list takes first valid",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"},
			remote:  "10.0.0.1:1234",
			want:    "203.0.113.5",
		},
		{
			name:    "x-forwarded-for garbage falls through",
			headers: map[string]string{"X-Forwarded-For": "not-an-ip"},
			remote:  "10.0.0.2:1234",
			want:    "10.0.0.2",
		},
		{
			name:    "x-real-ip",
			headers: map[string]string{"X-Real-IP": "198.51.100.7"},
			remote:  "10.0.0.1:1234",
			want:    "198.51.100.7",
		},
		{
			name:   "remote addr",
			remote: "192.0.2.44:9999",
			want:   "192.0.2.44",
		},
		{
			name:   "remote addr without port",
			remote: "192.0.2.44",
			want:   "192.0.2.44",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/health", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFirstIP(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"203.0.113.5", "203.0.113.5"},
		{" 203.0.113.5 , 10.0.0.1", "203.0.113.5"},
		{"garbage, 10.0.0.1", "10.0.0.1"},
		{"garbage", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := parseFirstIP(tt.input); got != tt.want {
			t.Errorf("parseFirstIP(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
