package server

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parsume/internal/config"
	"parsume/internal/errors"
)

func newMiddlewareTestServer(apiKeys []string) *Server {
	logger := errors.NewLogger(slog.LevelError)
	cfg := &config.Config{}
	cfg.App.DefaultMode = "local"

	return NewServer(cfg, ServerConfig{
		Host:           "127.0.0.1",
		Port:           "0",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: 1024,
	}, logger)
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		apiKeys    []string
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "no keys configured passes through",
			apiKeys:    nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key rejected",
			apiKeys:    []string{"valid-key-12345"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid key rejected",
			apiKeys:    []string{"valid-key-12345"},
			headers:    map[string]string{"X-API-Key": "wrong"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid x-api-key accepted",
			apiKeys:    []string{"valid-key-12345"},
			headers:    map[string]string{"X-API-Key": "valid-key-12345"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token accepted",
			apiKeys:    []string{"valid-key-12345"},
			headers:    map[string]string{"Authorization": "Bearer valid-key-12345"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMiddlewareTestServer(tt.apiKeys)

			handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest(http.MethodPost, "/parse", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			handler(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	s := newMiddlewareTestServer(nil)

	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("generates id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		handler(w, r)

		if w.Header().Get("X-Request-ID") == "" {
			t.Error("expected a generated X-Request-ID header")
		}
	})

	t.Run("honors client id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/health", nil)
		r.Header.Set("X-Request-ID", "client-chosen-id")
		w := httptest.NewRecorder()

		handler(w, r)

		if got := w.Header().Get("X-Request-ID"); got != "client-chosen-id" {
			t.Errorf("X-Request-ID = %q, want client-chosen-id", got)
		}
	})
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	s := newMiddlewareTestServer(nil)

	var readErr error
	handler := s.requestSizeLimitMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 4096)
		_, readErr = r.Body.Read(buf)
		w.WriteHeader(http.StatusOK)
	})

	body := strings.NewReader(strings.Repeat("x", 2048))
	r := httptest.NewRequest(http.MethodPost, "/parse", body)
	w := httptest.NewRecorder()

	handler(w, r)

	var maxBytesErr *http.MaxBytesError
	if !stderrors.As(readErr, &maxBytesErr) {
		t.Errorf("expected MaxBytesError for oversized body, got %v", readErr)
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "****"},
		{"short", "****"},
		{"12345678", "****"},
		{"123456789", "12345678****"},
		{"sk-1234567890abcdef", "sk-12345****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.input); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
