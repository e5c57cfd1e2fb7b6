package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"parsume/internal/ai"
	"parsume/internal/config"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// healthHandler provides a comprehensive health check endpoint including AI model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "parsume",
		"version": s.Version,
	}

	// The rule-based parser has no external dependencies
	response["parser"] = s.parserStatus()

	// Check AI model availability for the llm and hybrid modes
	aiStatus := s.checkAIModelsHealth()
	response["ai_models"] = aiStatus

	// Determine overall health status. An unavailable AI model degrades the
	// service but local parsing keeps working.
	overallHealthy := true
	for _, modelStatus := range aiStatus {
		if modelInfo, ok := modelStatus.(map[string]any); ok {
			if available, exists := modelInfo["available"]; exists {
				if avail, ok := available.(bool); ok && !avail {
					overallHealthy = false
					break
				}
			}
		}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parserStatus reports the state of the rule-based parser
func (s *Server) parserStatus() map[string]any {
	status := map[string]any{
		"available": true,
	}

	if s.AppConfig.Parser.TaxonomyFile != "" {
		status["taxonomy_file"] = s.AppConfig.Parser.TaxonomyFile
	}
	if s.taxonomyWatcher != nil {
		status["taxonomy_reload"] = s.taxonomyWatcher.Status()
	} else {
		status["taxonomy_reload"] = map[string]any{"enabled": false}
	}

	return status
}

// checkAIModelsHealth checks the health of the AI models used by the extract
// and score operations
func (s *Server) checkAIModelsHealth() map[string]any {
	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	aiStatus := make(map[string]any)

	extractConfig := s.AppConfig.GetExtractConfig()
	aiStatus["extract"] = s.checkModelHealth(ctx, &extractConfig, "extract")

	scoreConfig := s.AppConfig.GetScoreConfig()
	aiStatus["score"] = s.checkModelHealth(ctx, &scoreConfig, "score")

	return aiStatus
}

// checkModelHealth checks a single operation's AI model availability
func (s *Server) checkModelHealth(ctx context.Context, cfg *config.OperationAIConfig, operation string) any {
	// Running without an API key is a valid local-only deployment, so it
	// does not degrade health.
	if cfg.APIKey == "" {
		return map[string]any{
			"configured": false,
			"message":    fmt.Sprintf("No API key configured for %s; local mode only", operation),
		}
	}

	service, err := ai.NewService(cfg, operation, s.Logger)
	if err != nil {
		return map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create %s service: %v", operation, err),
		}
	}
	defer func() {
		if err := service.Close(); err != nil {
			s.Logger.LogError(err, "Failed to close AI service after health check")
		}
	}()

	return service.GetModelInfo(ctx)
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "parsume",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
		"parsing": map[string]any{
			"default_mode":       s.AppConfig.App.DefaultMode,
			"provider_available": s.Pipeline != nil && s.Pipeline.HasProvider(),
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
