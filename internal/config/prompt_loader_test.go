package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPromptsFromFiles(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Create test prompt files
	systemPromptContent := "Test system prompt for extraction"
	userPromptContent := "Test user prompt template: %s"

	systemPromptFile := filepath.Join(tempDir, "system.extract.md")
	userPromptFile := filepath.Join(tempDir, "user.extract.md")

	if err := os.WriteFile(systemPromptFile, []byte(systemPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test system prompt file: %v", err)
	}

	if err := os.WriteFile(userPromptFile, []byte(userPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test user prompt file: %v", err)
	}

	// Create test config
	config := &Config{
		AI: AIConfig{
			Extract: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						ExtractResumeFile: systemPromptFile,
					},
					UserPrompts: UserPrompts{
						ExtractResumeFile: userPromptFile,
					},
				},
			},
		},
	}

	// Test file loading
	err := config.loadPromptsFromFiles()
	if err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	// Verify content was loaded into global loadedPrompts
	loadedOps := GetPromptsForOperation("extract")

	if loadedOps.SystemPrompts.ExtractResume != systemPromptContent {
		t.Errorf("Expected loaded system prompt content '%s', got '%s'",
			systemPromptContent, loadedOps.SystemPrompts.ExtractResume)
	}

	if loadedOps.UserPrompts.ExtractResume != userPromptContent {
		t.Errorf("Expected loaded user prompt content '%s', got '%s'",
			userPromptContent, loadedOps.UserPrompts.ExtractResume)
	}

	// Verify file paths are preserved
	if config.AI.Extract.CustomPrompts.SystemPrompts.ExtractResumeFile != systemPromptFile {
		t.Error("Expected system prompt file path to be preserved")
	}

	if config.AI.Extract.CustomPrompts.UserPrompts.ExtractResumeFile != userPromptFile {
		t.Error("Expected user prompt file path to be preserved")
	}
}

func TestValidatePromptFiles(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Create a valid test file
	validFile := filepath.Join(tempDir, "valid.md")
	if err := os.WriteFile(validFile, []byte("Valid content"), 0600); err != nil {
		t.Fatalf("Failed to create valid test file: %v", err)
	}

	// Test with valid file
	config := &Config{
		AI: AIConfig{
			Score: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						ScoreResumeFile: validFile,
					},
				},
			},
		},
	}

	err := config.validatePromptFiles()
	if err != nil {
		t.Errorf("Expected validation to pass for valid file, got error: %v", err)
	}

	// Test with non-existent file
	config.AI.Score.CustomPrompts.SystemPrompts.ScoreResumeFile = filepath.Join(tempDir, "nonexistent.md")

	err = config.validatePromptFiles()
	if err == nil {
		t.Error("Expected validation to fail for non-existent file")
	}
}

func TestLoadPromptFromFile(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	config := &Config{}

	// Test with valid file
	content := "Test prompt content"
	testFile := filepath.Join(tempDir, "test.md")
	if err := os.WriteFile(testFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loaded, err := config.loadPromptFromFile(testFile, "system", "extractResume")
	if err != nil {
		t.Fatalf("Failed to load prompt from file: %v", err)
	}
	if loaded != content {
		t.Errorf("Expected content '%s', got '%s'", content, loaded)
	}

	// Test with whitespace-padded content
	paddedFile := filepath.Join(tempDir, "padded.md")
	if err := os.WriteFile(paddedFile, []byte("  padded content  \n"), 0600); err != nil {
		t.Fatalf("Failed to create padded test file: %v", err)
	}

	loaded, err = config.loadPromptFromFile(paddedFile, "user", "scoreResume")
	if err != nil {
		t.Fatalf("Failed to load padded prompt: %v", err)
	}
	if loaded != "padded content" {
		t.Errorf("Expected trimmed content, got '%s'", loaded)
	}

	// Test with empty file
	emptyFile := filepath.Join(tempDir, "empty.md")
	if err := os.WriteFile(emptyFile, []byte("   \n"), 0600); err != nil {
		t.Fatalf("Failed to create empty test file: %v", err)
	}

	if _, err := config.loadPromptFromFile(emptyFile, "system", "scoreResume"); err == nil {
		t.Error("Expected error for empty prompt file")
	}

	// Test with missing file
	if _, err := config.loadPromptFromFile(filepath.Join(tempDir, "missing.md"), "system", "extractResume"); err == nil {
		t.Error("Expected error for missing prompt file")
	}
}
