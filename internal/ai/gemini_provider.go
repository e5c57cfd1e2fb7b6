package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"parsume/internal/config"
	parsumeErrors "parsume/internal/errors"
	"parsume/internal/types"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *parsumeErrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *parsumeErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, parsumeErrors.NewAIError(parsumeErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	// Initialize circuit breaker with operation-specific configuration
	circuitBreaker := NewAICircuitBreaker(operationType, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(operationType, cfg, logger)

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	// Create a timeout context for the model check
	timeout := getAIModelCheckTimeout()
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Get model information from Gemini API with circuit breaker
	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	// Model is available, populate info
	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			// Use crypto/rand for secure random jitter
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	// Log final failure
	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true // Retry on timeouts
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// classifyGenerationError maps a generation failure to an application error code
func classifyGenerationError(err error) string {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return parsumeErrors.ErrCodeProviderDown
	}
	return parsumeErrors.ErrCodeAIServiceFailed
}

// executeAIOperation is a generic helper to run AI operations with common tracing, circuit breaker, and parsing logic.
func executeAIOperation[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out
	tracer := otel.Tracer("parsume.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	// Set base attributes
	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, parsumeErrors.NewAIError(classifyGenerationError(err), "Failed to generate content for "+operationName, err)
	}

	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, parsumeErrors.NewAIError(parsumeErrors.ErrCodeProviderBadReply, "Failed to parse AI response for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return output, tokenUsage, nil
}

// ExtractResume implements AIProvider interface for structured resume extraction
func (g *GeminiProvider) ExtractResume(ctx context.Context, resumeText string) (map[string]any, *TokenUsage, error) {
	systemPrompt, userPrompt := g.getPromptsForExtract(resumeText)
	config := g.buildExtractSchema()

	output, tokenUsage, err := executeAIOperation[map[string]any](
		g,
		ctx,
		"extract_resume",
		userPrompt,
		systemPrompt,
		config,
		attribute.Int("input.resume_length", len(resumeText)),
	)

	if err != nil {
		return nil, nil, err
	}

	// Add operation-specific success metrics to the span created by the helper
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.field_count", len(output)),
		)
	}

	return output, tokenUsage, nil
}

// ScoreResume implements AIProvider interface for ATS analysis
func (g *GeminiProvider) ScoreResume(ctx context.Context, record types.ResumeRecord, jobDescription string) (types.ATSAnalysis, *TokenUsage, error) {
	resumeJSON, err := json.Marshal(record)
	if err != nil {
		return types.ATSAnalysis{}, nil, parsumeErrors.NewInternalError(parsumeErrors.ErrCodeInvalidFormat,
			"Failed to serialize resume for scoring", err)
	}

	systemPrompt, userPrompt := g.getPromptsForScore(string(resumeJSON), jobDescription)
	config := g.buildScoreSchema()

	output, tokenUsage, err := executeAIOperation[types.ATSAnalysis](
		g,
		ctx,
		"score_resume",
		userPrompt,
		systemPrompt,
		config,
		attribute.Int("input.resume_length", len(resumeJSON)),
		attribute.Int("input.job_length", len(jobDescription)),
	)

	if err != nil {
		return types.ATSAnalysis{}, nil, err
	}

	// Add operation-specific success metrics to the span created by the helper
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("ats.overall_score", output.OverallScore),
			attribute.Int("ats.predicted_pass_rate", output.PredictedPassRate),
		)
	}

	return output, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	// Probably needed in streaming mode
	return nil
}

// stringArray is a shorthand for a JSON schema array of strings
func stringArray() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
}

// buildExtractSchema creates the schema for extraction requests
func (g *GeminiProvider) buildExtractSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":          {Type: genai.TypeString},
				"email":         stringArray(),
				"mobile_number": stringArray(),
				"summary":       {Type: genai.TypeString},
				"skills":        stringArray(),
				"experience": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"title":       {Type: genai.TypeString},
							"company":     {Type: genai.TypeString},
							"duration":    {Type: genai.TypeString},
							"description": {Type: genai.TypeString},
						},
						Required: []string{"title", "company"},
					},
				},
				"education": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"degree":         {Type: genai.TypeString},
							"institution":    {Type: genai.TypeString},
							"field_of_study": {Type: genai.TypeString},
							"year":           {Type: genai.TypeString},
						},
						Required: []string{"degree"},
					},
				},
				"projects": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":        {Type: genai.TypeString},
							"description": {Type: genai.TypeString},
						},
						Required: []string{"name"},
					},
				},
				"certifications": stringArray(),
			},
			Required: []string{"name", "email", "mobile_number", "skills", "experience", "education"},
		},
	}

	// Apply temperature configuration if set
	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// buildScoreSchema creates the schema for ATS analysis requests
func (g *GeminiProvider) buildScoreSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"overall_score": {Type: genai.TypeInteger},
				"keyword_analysis": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"keyword_match_score":       {Type: genai.TypeInteger},
						"matched_keywords":          stringArray(),
						"missing_critical_keywords": stringArray(),
						"recommendations":           stringArray(),
					},
					Required: []string{"keyword_match_score", "matched_keywords", "missing_critical_keywords", "recommendations"},
				},
				"content_analysis": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"content_score":    {Type: genai.TypeInteger},
						"strengths":        stringArray(),
						"weaknesses":       stringArray(),
						"missing_sections": stringArray(),
						"recommendations":  stringArray(),
					},
					Required: []string{"content_score", "strengths", "weaknesses", "missing_sections", "recommendations"},
				},
				"formatting_analysis": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"formatting_score":  {Type: genai.TypeInteger},
						"formatting_issues": stringArray(),
						"recommendations":   stringArray(),
					},
					Required: []string{"formatting_score", "formatting_issues", "recommendations"},
				},
				"skills_analysis": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"skills_match_score": {Type: genai.TypeInteger},
						"matched_skills":     stringArray(),
						"missing_skills":     stringArray(),
						"recommendations":    stringArray(),
					},
					Required: []string{"skills_match_score", "matched_skills", "missing_skills", "recommendations"},
				},
				"experience_analysis": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"experience_score":    {Type: genai.TypeInteger},
						"relevant_experience": stringArray(),
						"experience_gaps":     stringArray(),
						"recommendations":     stringArray(),
					},
					Required: []string{"experience_score", "relevant_experience", "experience_gaps", "recommendations"},
				},
				"improvement_priority": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"high_priority":   stringArray(),
						"medium_priority": stringArray(),
						"low_priority":    stringArray(),
					},
					Required: []string{"high_priority", "medium_priority", "low_priority"},
				},
				"ats_optimization_tips":   stringArray(),
				"predicted_ats_pass_rate": {Type: genai.TypeInteger},
				"summary":                 {Type: genai.TypeString},
			},
			Required: []string{
				"overall_score", "keyword_analysis", "content_analysis", "formatting_analysis",
				"skills_analysis", "experience_analysis", "improvement_priority",
				"ats_optimization_tips", "predicted_ats_pass_rate", "summary",
			},
		},
	}

	// Apply temperature configuration if set
	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// getPromptsForExtract returns system and user prompts for extraction
func (g *GeminiProvider) getPromptsForExtract(resumeText string) (string, string) {
	systemPrompt := g.getSystemPrompt("extract")
	userPrompt := g.getUserPrompt("extract")

	// Format user prompt with dynamic content
	formattedUserPrompt := fmt.Sprintf(userPrompt, resumeText)

	return systemPrompt, formattedUserPrompt
}

// getPromptsForScore returns system and user prompts for ATS analysis
func (g *GeminiProvider) getPromptsForScore(resumeJSON, jobDescription string) (string, string) {
	systemPrompt := g.getSystemPrompt("score")
	userPrompt := g.getUserPrompt("score")

	// Format user prompt with dynamic content
	formattedUserPrompt := fmt.Sprintf(userPrompt, resumeJSON, jobDescription)

	return systemPrompt, formattedUserPrompt
}

// getSystemPrompt returns the appropriate system prompt
func (g *GeminiProvider) getSystemPrompt(promptType string) string {
	loadedPrompts, configPrompts := g.getPrompts(promptType)
	var configSystemPrompts *config.SystemPrompts
	if configPrompts != nil {
		configSystemPrompts = &configPrompts.SystemPrompts
	} else {
		// Create an empty struct to avoid nil pointer panics
		configSystemPrompts = &config.SystemPrompts{}
	}

	switch promptType {
	case "extract":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.ExtractResume,
			configSystemPrompts.ExtractResume,
			DefaultSystemPrompts.ExtractResume,
		)
	case "score":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.ScoreResume,
			configSystemPrompts.ScoreResume,
			DefaultSystemPrompts.ScoreResume,
		)
	default:
		return ""
	}
}

// getUserPrompt returns the appropriate user prompt template
func (g *GeminiProvider) getUserPrompt(promptType string) string {
	loadedPrompts, configPrompts := g.getPrompts(promptType)
	var configUserPrompts *config.UserPrompts
	if configPrompts != nil {
		configUserPrompts = &configPrompts.UserPrompts
	} else {
		// Create an empty struct to avoid nil pointer panics
		configUserPrompts = &config.UserPrompts{}
	}

	switch promptType {
	case "extract":
		return resolvePrompt(
			loadedPrompts.UserPrompts.ExtractResume,
			configUserPrompts.ExtractResume,
			DefaultUserPrompts.ExtractResume,
		)
	case "score":
		return resolvePrompt(
			loadedPrompts.UserPrompts.ScoreResume,
			configUserPrompts.ScoreResume,
			DefaultUserPrompts.ScoreResume,
		)
	default:
		return ""
	}
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// getAIModelCheckTimeout returns the configured AI model check timeout
func getAIModelCheckTimeout() time.Duration {
	// TODO: plumb observability.healthCheck.aiModelCheckTimeout through here
	return 10 * time.Second
}

// getPrompts returns the appropriate prompts for the operation, prioritizing loaded content over config
func (g *GeminiProvider) getPrompts(operationType string) (config.OperationLoadedPrompts, *config.PromptConfig) {
	// Get loaded prompts (returns a copy)
	loadedPrompts := config.GetPromptsForOperation(operationType)
	configPrompts := &g.config.CustomPrompts
	return loadedPrompts, configPrompts
}

// resolvePrompt selects the correct prompt string based on a clear priority order:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. A hardcoded default prompt.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
