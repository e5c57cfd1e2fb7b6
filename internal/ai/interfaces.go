package ai

import (
	"context"

	"parsume/internal/types"
)

// AIProvider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	// ExtractResume parses free-form resume text into a structured document.
	// The result is a raw field map so callers can normalize provider-specific
	// key variations before building a ResumeRecord.
	ExtractResume(ctx context.Context, resumeText string) (map[string]any, *TokenUsage, error)
	// ScoreResume analyzes a parsed resume against an optional job description.
	ScoreResume(ctx context.Context, record types.ResumeRecord, jobDescription string) (types.ATSAnalysis, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// SchemaBuilder interface for building AI request schemas
type SchemaBuilder interface {
	BuildExtractSchema() any
	BuildScoreSchema() any
}

// PromptBuilder interface for building AI prompts
type PromptBuilder interface {
	BuildExtractPrompt(resumeText string) string
	BuildScorePrompt(resumeJSON, jobDescription string) string
}
