package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetExtractConfig returns the AI configuration for extract operations with fallback to global config
func (c *Config) GetExtractConfig() OperationAIConfig {
	config := c.AI.Extract

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply extract-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.ExtractResume == "" {
		config.CustomPrompts.SystemPrompts.ExtractResume = c.AI.CustomPrompts.SystemPrompts.ExtractResume
	}
	if config.CustomPrompts.UserPrompts.ExtractResume == "" {
		config.CustomPrompts.UserPrompts.ExtractResume = c.AI.CustomPrompts.UserPrompts.ExtractResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.ExtractResumeFile == "" {
		config.CustomPrompts.SystemPrompts.ExtractResumeFile = c.AI.CustomPrompts.SystemPrompts.ExtractResumeFile
	}
	if config.CustomPrompts.UserPrompts.ExtractResumeFile == "" {
		config.CustomPrompts.UserPrompts.ExtractResumeFile = c.AI.CustomPrompts.UserPrompts.ExtractResumeFile
	}

	return config
}

// GetScoreConfig returns the AI configuration for score operations with fallback to global config
func (c *Config) GetScoreConfig() OperationAIConfig {
	config := c.AI.Score

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply score-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.ScoreResume == "" {
		config.CustomPrompts.SystemPrompts.ScoreResume = c.AI.CustomPrompts.SystemPrompts.ScoreResume
	}
	if config.CustomPrompts.UserPrompts.ScoreResume == "" {
		config.CustomPrompts.UserPrompts.ScoreResume = c.AI.CustomPrompts.UserPrompts.ScoreResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.ScoreResumeFile == "" {
		config.CustomPrompts.SystemPrompts.ScoreResumeFile = c.AI.CustomPrompts.SystemPrompts.ScoreResumeFile
	}
	if config.CustomPrompts.UserPrompts.ScoreResumeFile == "" {
		config.CustomPrompts.UserPrompts.ScoreResumeFile = c.AI.CustomPrompts.UserPrompts.ScoreResumeFile
	}

	return config
}

// GetLoadedExtractPrompts returns a copy of the loaded prompts for extract operation
func (c *Config) GetLoadedExtractPrompts() OperationLoadedPrompts {
	return loadedPrompts.Extract
}

// GetLoadedScorePrompts returns a copy of the loaded prompts for score operation
func (c *Config) GetLoadedScorePrompts() OperationLoadedPrompts {
	return loadedPrompts.Score
}

// GetLoadedGlobalPrompts returns a copy of the loaded global prompts
func (c *Config) GetLoadedGlobalPrompts() LoadedPrompts {
	return loadedPrompts.Global
}
