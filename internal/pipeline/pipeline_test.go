package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"parsume/internal/ai"
	"parsume/internal/config"
	"parsume/internal/errors"
	"parsume/internal/types"
)

const sampleResume = `John Smith
john.smith@example.com | 415-555-2671

SUMMARY
Backend engineer with six years of experience building data services.

SKILLS
Python, Go, PostgreSQL, Docker

EXPERIENCE
Senior Software Engineer at Initech
2019 - Present
Built ingestion pipelines processing 2M records per day.

EDUCATION
Bachelor of Science in Computer Science, State University, 2016
`

// stubProvider is a canned AIProvider for exercising the orchestration paths
// without a network dependency.
type stubProvider struct {
	extractDoc map[string]any
	extractErr error
	scoreOut   types.ATSAnalysis
	scoreErr   error
	closed     bool
}

func (s *stubProvider) ExtractResume(ctx context.Context, resumeText string) (map[string]any, *ai.TokenUsage, error) {
	if s.extractErr != nil {
		return nil, nil, s.extractErr
	}
	return s.extractDoc, &ai.TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, nil
}

func (s *stubProvider) ScoreResume(ctx context.Context, record types.ResumeRecord, jobDescription string) (types.ATSAnalysis, *ai.TokenUsage, error) {
	if s.scoreErr != nil {
		return types.ATSAnalysis{}, nil, s.scoreErr
	}
	return s.scoreOut, &ai.TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, nil
}

func (s *stubProvider) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "stub", Available: true}
}

func (s *stubProvider) Close() error {
	s.closed = true
	return nil
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeLocal, false},
		{"local", ModeLocal, false},
		{"llm", ModeLLM, false},
		{"hybrid", ModeHybrid, false},
		{"  Hybrid ", ModeHybrid, false},
		{"turbo", "", true},
	}

	for _, tt := range tests {
		mode, err := ParseMode(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q): expected error", tt.input)
			} else if !errors.HasCode(err, errors.ErrCodeInvalidRequest) {
				t.Errorf("ParseMode(%q): expected INVALID_REQUEST, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error %v", tt.input, err)
		}
		if mode != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.input, mode, tt.want)
		}
	}
}

func TestFromConfigBuildsProviders(t *testing.T) {
	logger, _ := errors.New("error")
	cfg := &config.Config{
		AI: config.AIConfig{
			Provider:         "gemini",
			Model:            "gemini-2.0-flash",
			APIKey:           "test-api-key",
			Timeout:          60 * time.Second,
			MaxRetries:       3,
			Temperature:      0.7,
			UseSystemPrompts: true,
		},
	}

	pipe, err := FromConfig(cfg, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer pipe.Close()

	if !pipe.HasProvider() {
		t.Error("expected AI providers when an API key is configured")
	}
}

func TestFromConfigWithoutAPIKey(t *testing.T) {
	logger, _ := errors.New("error")

	pipe, err := FromConfig(&config.Config{}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer pipe.Close()

	if pipe.HasProvider() {
		t.Error("expected no AI providers without an API key")
	}
}

func TestParseTextLocal(t *testing.T) {
	pipe := New(Options{})

	record, err := pipe.ParseText(context.Background(), sampleResume, ModeLocal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ParsingSource != types.SourceLocal {
		t.Errorf("ParsingSource = %q, want %q", record.ParsingSource, types.SourceLocal)
	}
	if len(record.Email) == 0 || record.Email[0] != "john.smith@example.com" {
		t.Errorf("expected email to be extracted, got %v", record.Email)
	}
	if record.ConfidenceScore <= 0 || record.ConfidenceScore > 1 {
		t.Errorf("confidence %v outside (0, 1]", record.ConfidenceScore)
	}
}

func TestParseTextEmpty(t *testing.T) {
	pipe := New(Options{})

	for _, mode := range []Mode{ModeLocal, ModeLLM, ModeHybrid} {
		_, err := pipe.ParseText(context.Background(), "   \n\t ", mode)
		if err == nil {
			t.Errorf("mode %s: expected error for whitespace input", mode)
			continue
		}
		if !errors.HasCode(err, errors.ErrCodeNoTextExtracted) {
			t.Errorf("mode %s: expected NO_TEXT_EXTRACTED, got %v", mode, err)
		}
	}
}

func TestParseTextLLMWithoutProvider(t *testing.T) {
	pipe := New(Options{})

	_, err := pipe.ParseText(context.Background(), sampleResume, ModeLLM)
	if err == nil {
		t.Fatal("expected error when no provider is configured")
	}
	if !errors.HasCode(err, errors.ErrCodeMissingAPIKey) {
		t.Errorf("expected MISSING_API_KEY, got %v", err)
	}
}

func TestParseTextLLM(t *testing.T) {
	provider := &stubProvider{
		extractDoc: map[string]any{
			"full_name": "John Smith",
			"email":     "john.smith@example.com",
			"skills":    []any{"Python", "Go"},
		},
	}
	pipe := New(Options{ExtractProvider: provider})

	record, err := pipe.ParseText(context.Background(), sampleResume, ModeLLM)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ParsingSource != types.SourceLLM {
		t.Errorf("ParsingSource = %q, want %q", record.ParsingSource, types.SourceLLM)
	}
	if record.Name != "John Smith" {
		t.Errorf("Name = %q, want John Smith", record.Name)
	}
	if len(record.Email) != 1 || record.Email[0] != "john.smith@example.com" {
		t.Errorf("expected singleton email to be wrapped into a list, got %v", record.Email)
	}
	if record.RawText == "" {
		t.Error("expected raw text to be carried onto the llm record")
	}
	if record.ConfidenceScore <= 0 {
		t.Errorf("expected derived confidence, got %v", record.ConfidenceScore)
	}
}

func TestParseTextLLMProviderFailure(t *testing.T) {
	provider := &stubProvider{
		extractErr: errors.NewAIError(errors.ErrCodeProviderDown, "circuit open", nil),
	}
	pipe := New(Options{ExtractProvider: provider})

	_, err := pipe.ParseText(context.Background(), sampleResume, ModeLLM)
	if err == nil {
		t.Fatal("expected provider failure to surface in llm mode")
	}
	if !errors.HasCode(err, errors.ErrCodeProviderDown) {
		t.Errorf("expected PROVIDER_UNAVAILABLE, got %v", err)
	}
}

func TestParseTextHybridFallsBackToLocal(t *testing.T) {
	provider := &stubProvider{
		extractErr: errors.NewAIError(errors.ErrCodeProviderBadReply, "not json", nil),
	}
	pipe := New(Options{ExtractProvider: provider})

	record, err := pipe.ParseText(context.Background(), sampleResume, ModeHybrid)
	if err != nil {
		t.Fatalf("hybrid mode must degrade, not fail: %v", err)
	}
	if record.ParsingSource != types.SourceLocal {
		t.Errorf("ParsingSource = %q, want local after fallback", record.ParsingSource)
	}
	if len(record.Email) == 0 {
		t.Error("expected local extraction to have run")
	}
}

func TestParseTextHybridMerges(t *testing.T) {
	provider := &stubProvider{
		extractDoc: map[string]any{
			"name":   "John A. Smith",
			"skills": []any{"Kubernetes", "python"},
		},
	}
	pipe := New(Options{ExtractProvider: provider})

	record, err := pipe.ParseText(context.Background(), sampleResume, ModeHybrid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ParsingSource != types.SourceHybrid {
		t.Errorf("ParsingSource = %q, want %q", record.ParsingSource, types.SourceHybrid)
	}
	if record.Name != "John A. Smith" {
		t.Errorf("expected AI name to win, got %q", record.Name)
	}

	seen := map[string]bool{}
	for _, s := range record.Skills {
		seen[s] = true
	}
	if !seen["Kubernetes"] {
		t.Errorf("expected AI-only skill in merged set, got %v", record.Skills)
	}
	// Local "Python" and AI "python" must not both survive the union
	pythonCount := 0
	for _, s := range record.Skills {
		if s == "Python" || s == "python" {
			pythonCount++
		}
	}
	if pythonCount != 1 {
		t.Errorf("expected case-insensitive union, got %v", record.Skills)
	}
	if len(record.Email) == 0 {
		t.Error("expected local email to survive the merge")
	}
}

func TestScoreLocalMode(t *testing.T) {
	provider := &stubProvider{
		scoreErr: errors.NewAIError(errors.ErrCodeProviderDown, "should not be called", nil),
	}
	pipe := New(Options{ScoreProvider: provider})

	record, err := pipe.ParseText(context.Background(), sampleResume, ModeLocal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	analysis, err := pipe.Score(context.Background(), record, "Looking for a Go engineer", ModeLocal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.AnalysisMethod != "rule_based" {
		t.Errorf("AnalysisMethod = %q, want rule_based", analysis.AnalysisMethod)
	}
}

func TestScoreLLMMode(t *testing.T) {
	provider := &stubProvider{
		scoreOut: types.ATSAnalysis{
			OverallScore:      82,
			PredictedPassRate: 75,
			Summary:           "Strong match",
		},
	}
	pipe := New(Options{ScoreProvider: provider})

	analysis, err := pipe.Score(context.Background(), types.ResumeRecord{}, "job", ModeLLM)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.AnalysisMethod != "llm" {
		t.Errorf("AnalysisMethod = %q, want llm", analysis.AnalysisMethod)
	}
	if analysis.OverallScore != 82 {
		t.Errorf("OverallScore = %d, want 82", analysis.OverallScore)
	}
}

func TestScoreLLMFallsBack(t *testing.T) {
	provider := &stubProvider{
		scoreErr: errors.NewAIError(errors.ErrCodeAITimeout, "deadline exceeded", nil),
	}
	pipe := New(Options{ScoreProvider: provider})

	record, err := pipe.ParseText(context.Background(), sampleResume, ModeLocal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	analysis, err := pipe.Score(context.Background(), record, "", ModeLLM)
	if err != nil {
		t.Fatalf("fallback must not fail: %v", err)
	}
	if analysis.AnalysisMethod != "rule_based" {
		t.Errorf("AnalysisMethod = %q, want rule_based after fallback", analysis.AnalysisMethod)
	}
	if !analysis.KeywordAnalysis.Skipped {
		t.Error("expected keyword analysis to be skipped for empty job description")
	}
}

func TestOptimize(t *testing.T) {
	pipe := New(Options{})

	record, err := pipe.ParseText(context.Background(), sampleResume, ModeLocal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := pipe.Optimize(record, "")
	if result.Score <= 0 || result.Score > 100 {
		t.Errorf("Score = %d, want (0, 100]", result.Score)
	}
	if len(result.Suggestions) == 0 || !strings.Contains(result.Suggestions[0], "resume") {
		t.Errorf("expected a verdict line first, got %v", result.Suggestions)
	}
}

func TestClose(t *testing.T) {
	extractP := &stubProvider{}
	scoreP := &stubProvider{}
	pipe := New(Options{ExtractProvider: extractP, ScoreProvider: scoreP})

	if err := pipe.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !extractP.closed || !scoreP.closed {
		t.Error("expected both providers to be closed")
	}
}
