package ai

import (
	"context"
	"fmt"

	"parsume/internal/config"
	"parsume/internal/errors"
	"parsume/internal/types"
)

// Service provides AI capabilities for a single operation type
type Service struct {
	Provider AIProvider
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service with the specified operation configuration
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	logger.Debug("Creating AI service",
		"operation_type", operationType,
		"provider", cfg.Provider,
		"model", cfg.Model,
		"timeout", cfg.Timeout.String(),
		"max_retries", *cfg.MaxRetries,
		"temperature", *cfg.Temperature,
		"use_system_prompts", *cfg.UseSystemPrompts)

	if cfg.APIKey == "" {
		return nil, errors.NewConfigError(errors.ErrCodeMissingAPIKey,
			fmt.Sprintf("No API key configured for AI operation '%s'", operationType), nil)
	}

	var provider AIProvider
	var err error

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// ExtractResume extracts structured resume data from raw text
func (s *Service) ExtractResume(ctx context.Context, resumeText string) (map[string]any, *TokenUsage, error) {
	return s.Provider.ExtractResume(ctx, resumeText)
}

// ScoreResume analyzes a parsed resume against an optional job description
func (s *Service) ScoreResume(ctx context.Context, record types.ResumeRecord, jobDescription string) (types.ATSAnalysis, *TokenUsage, error) {
	return s.Provider.ScoreResume(ctx, record, jobDescription)
}

// GetModelInfo returns information about the configured AI model
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}

// Close releases provider resources
func (s *Service) Close() error {
	return s.Provider.Close()
}
