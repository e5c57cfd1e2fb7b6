package ai

import (
	"strings"
	"testing"
)

func TestResolvePromptPriority(t *testing.T) {
	if got := resolvePrompt("from-file", "from-config", "default"); got != "from-file" {
		t.Errorf("expected file content to win, got %q", got)
	}
	if got := resolvePrompt("", "from-config", "default"); got != "from-config" {
		t.Errorf("expected config content to win over default, got %q", got)
	}
	if got := resolvePrompt("", "", "default"); got != "default" {
		t.Errorf("expected default fallback, got %q", got)
	}
}

func TestDefaultUserPromptPlaceholders(t *testing.T) {
	if strings.Count(DefaultUserPrompts.ExtractResume, "%s") != 1 {
		t.Error("extract user prompt must have exactly one placeholder for resume text")
	}
	if strings.Count(DefaultUserPrompts.ScoreResume, "%s") != 2 {
		t.Error("score user prompt must have placeholders for resume JSON and job description")
	}
}

func TestGetDefaultPromptConfig(t *testing.T) {
	cfg := GetDefaultPromptConfig()
	if cfg.SystemPrompts.ExtractResume == "" || cfg.SystemPrompts.ScoreResume == "" {
		t.Error("default system prompts must not be empty")
	}
	if cfg.UserPrompts.ExtractResume == "" || cfg.UserPrompts.ScoreResume == "" {
		t.Error("default user prompts must not be empty")
	}
}
