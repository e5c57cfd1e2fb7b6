package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// GetLoadedPrompts returns the loaded prompt content in a thread-safe way
func GetLoadedPrompts() *AllLoadedPrompts {
	return &loadedPrompts
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	// Initialize loaded prompts exactly once
	loadedPromptsOnce.Do(func() {
		loadedPrompts = AllLoadedPrompts{}
	})

	// Load global prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.CustomPrompts.SystemPrompts, &loadedPrompts.Global.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load global system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CustomPrompts.UserPrompts, &loadedPrompts.Global.UserPrompts); err != nil {
		return fmt.Errorf("failed to load global user prompts: %w", err)
	}

	// Load operation-specific prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.Extract.CustomPrompts.SystemPrompts, &loadedPrompts.Extract.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load extract system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Extract.CustomPrompts.UserPrompts, &loadedPrompts.Extract.UserPrompts); err != nil {
		return fmt.Errorf("failed to load extract user prompts: %w", err)
	}

	if err := c.loadSystemPromptsFromFiles(&c.AI.Score.CustomPrompts.SystemPrompts, &loadedPrompts.Score.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load score system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Score.CustomPrompts.UserPrompts, &loadedPrompts.Score.UserPrompts); err != nil {
		return fmt.Errorf("failed to load score user prompts: %w", err)
	}

	c.logPromptLoadingSummary()

	return nil
}

// loadSystemPromptsFromFiles loads system prompts from files if file paths are specified
func (c *Config) loadSystemPromptsFromFiles(prompts *SystemPrompts, target *LoadedSystemPrompts) error {
	if prompts.ExtractResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.ExtractResumeFile, "system", "extractResume")
		if err != nil {
			return err
		}
		target.ExtractResume = content
	}

	if prompts.ScoreResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.ScoreResumeFile, "system", "scoreResume")
		if err != nil {
			return err
		}
		target.ScoreResume = content
	}

	return nil
}

// loadUserPromptsFromFiles loads user prompts from files if file paths are specified
func (c *Config) loadUserPromptsFromFiles(prompts *UserPrompts, target *LoadedUserPrompts) error {
	if prompts.ExtractResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.ExtractResumeFile, "user", "extractResume")
		if err != nil {
			return err
		}
		target.ExtractResume = content
	}

	if prompts.ScoreResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.ScoreResumeFile, "user", "scoreResume")
		if err != nil {
			return err
		}
		target.ScoreResume = content
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	// Helper function to validate a file path
	validateFile := func(filePath, promptType, operation string) {
		if filePath == "" {
			return // No file specified, skip validation
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", promptType, operation, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", promptType, operation, absPath))
		}
	}

	// Validate global prompt files
	validateFile(c.AI.CustomPrompts.SystemPrompts.ExtractResumeFile, "system", "extractResume")
	validateFile(c.AI.CustomPrompts.SystemPrompts.ScoreResumeFile, "system", "scoreResume")
	validateFile(c.AI.CustomPrompts.UserPrompts.ExtractResumeFile, "user", "extractResume")
	validateFile(c.AI.CustomPrompts.UserPrompts.ScoreResumeFile, "user", "scoreResume")

	// Validate operation-specific prompt files
	validateFile(c.AI.Extract.CustomPrompts.SystemPrompts.ExtractResumeFile, "extract system", "extractResume")
	validateFile(c.AI.Extract.CustomPrompts.UserPrompts.ExtractResumeFile, "extract user", "extractResume")
	validateFile(c.AI.Score.CustomPrompts.SystemPrompts.ScoreResumeFile, "score system", "scoreResume")
	validateFile(c.AI.Score.CustomPrompts.UserPrompts.ScoreResumeFile, "score user", "scoreResume")

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	promptCount := 0
	promptChecks := []struct {
		content string
		message string
	}{
		{loadedPrompts.Global.SystemPrompts.ExtractResume, "[CONFIG] Global system extract prompt: loaded from config/file"},
		{loadedPrompts.Global.SystemPrompts.ScoreResume, "[CONFIG] Global system score prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.ExtractResume, "[CONFIG] Global user extract prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.ScoreResume, "[CONFIG] Global user score prompt: loaded from config/file"},
		{loadedPrompts.Extract.SystemPrompts.ExtractResume, "[CONFIG] Extract-specific system prompt: loaded from config/file"},
		{loadedPrompts.Extract.UserPrompts.ExtractResume, "[CONFIG] Extract-specific user prompt: loaded from config/file"},
		{loadedPrompts.Score.SystemPrompts.ScoreResume, "[CONFIG] Score-specific system prompt: loaded from config/file"},
		{loadedPrompts.Score.UserPrompts.ScoreResume, "[CONFIG] Score-specific user prompt: loaded from config/file"},
	}

	for _, check := range promptChecks {
		if check.content != "" {
			log.Println(check.message)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}
