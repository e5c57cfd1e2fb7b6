package ai

import (
	"log/slog"
	"testing"
	"time"

	"parsume/internal/config"
	"parsume/internal/errors"

	"google.golang.org/genai"
)

func newBreakerTestConfig(enabled bool) *config.OperationAIConfig {
	return &config.OperationAIConfig{
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          enabled,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}
}

func TestNewAICircuitBreaker(t *testing.T) {
	logger := errors.NewLogger(slog.LevelDebug)

	cb := NewAICircuitBreaker("extract", newBreakerTestConfig(true), logger)
	if cb == nil {
		t.Fatal("expected circuit breaker to be created when enabled")
	}

	stats := cb.GetStats()
	if stats["name"] != "AI-extract" {
		t.Errorf("expected name AI-extract, got %v", stats["name"])
	}
	if stats["enabled"] != true {
		t.Errorf("expected breaker to report enabled, got %v", stats["enabled"])
	}
	if stats["state"] != "closed" {
		t.Errorf("expected initial state closed, got %v", stats["state"])
	}
	if !cb.IsHealthy() {
		t.Error("expected new breaker to be healthy")
	}
}

func TestNewAICircuitBreakerDisabled(t *testing.T) {
	logger := errors.NewLogger(slog.LevelDebug)

	cb := NewAICircuitBreaker("extract", newBreakerTestConfig(false), logger)
	if cb != nil {
		t.Error("expected nil circuit breaker when disabled")
	}

	// Nil breakers pass operations through and always report healthy
	if !cb.IsHealthy() {
		t.Error("expected nil breaker to report healthy")
	}
	stats := cb.GetStats()
	if stats["enabled"] != false {
		t.Errorf("expected nil breaker stats to report disabled, got %v", stats["enabled"])
	}
}

func TestNewModelCircuitBreaker(t *testing.T) {
	logger := errors.NewLogger(slog.LevelDebug)

	mb := NewModelCircuitBreaker("score", newBreakerTestConfig(true), logger)
	if mb == nil {
		t.Fatal("expected model circuit breaker to be created when enabled")
	}

	stats := mb.GetModelStats()
	if stats["name"] != "AI-Model-score" {
		t.Errorf("expected name AI-Model-score, got %v", stats["name"])
	}
	if !mb.IsModelHealthy() {
		t.Error("expected new model breaker to be healthy")
	}
}

func TestIndependentBreakersPerOperation(t *testing.T) {
	logger := errors.NewLogger(slog.LevelDebug)

	extractCB := NewAICircuitBreaker("extract", newBreakerTestConfig(true), logger)
	scoreCB := NewAICircuitBreaker("score", newBreakerTestConfig(true), logger)

	if extractCB == nil || scoreCB == nil {
		t.Fatal("expected both breakers to be created")
	}
	if extractCB.GetStats()["name"] == scoreCB.GetStats()["name"] {
		t.Error("expected operation breakers to have distinct names")
	}
}

func TestNilBreakerExecutePassesThrough(t *testing.T) {
	var cb *AICircuitBreaker

	called := false
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Errorf("expected nil error from pass-through, got %v", err)
	}
	if !called {
		t.Error("expected operation to run through nil breaker")
	}
}
