// Package pipeline orchestrates the extraction paths: the rule-based parser,
// the LLM-backed extractor, and the hybrid merge of both, plus the matching
// scoring paths. It owns the fallback policy when a provider is unavailable.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"parsume/internal/ai"
	"parsume/internal/ats"
	"parsume/internal/config"
	"parsume/internal/errors"
	"parsume/internal/extract"
	"parsume/internal/parser"
	"parsume/internal/schema"
	"parsume/internal/types"
)

// Mode selects which extraction path a parse request uses.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeLLM    Mode = "llm"
	ModeHybrid Mode = "hybrid"
)

// ParseMode validates a mode string. An empty string maps to ModeLocal.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ModeLocal, nil
	case ModeLocal:
		return ModeLocal, nil
	case ModeLLM:
		return ModeLLM, nil
	case ModeHybrid:
		return ModeHybrid, nil
	default:
		return "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid parse mode %q (must be local, llm, or hybrid)", s), nil)
	}
}

// Pipeline wires the parser, the analyzer, and the optional AI providers
// into the parse/score/optimize operations.
type Pipeline struct {
	parser          *parser.Parser
	analyzer        *ats.Analyzer
	extractProvider ai.AIProvider
	scoreProvider   ai.AIProvider
	logger          *errors.Logger
}

// Options configures a Pipeline. Nil Parser or Analyzer fall back to
// defaults; nil providers disable the llm and hybrid paths.
type Options struct {
	Parser          *parser.Parser
	Analyzer        *ats.Analyzer
	ExtractProvider ai.AIProvider
	ScoreProvider   ai.AIProvider
	Logger          *errors.Logger
}

// New builds a Pipeline from opts.
func New(opts Options) *Pipeline {
	p := opts.Parser
	if p == nil {
		p = parser.New(parser.Config{})
	}
	a := opts.Analyzer
	if a == nil {
		a = ats.NewAnalyzer(ats.DefaultConfig())
	}
	logger := opts.Logger
	if logger == nil {
		logger, _ = errors.New("info")
	}
	return &Pipeline{
		parser:          p,
		analyzer:        a,
		extractProvider: opts.ExtractProvider,
		scoreProvider:   opts.ScoreProvider,
		logger:          logger,
	}
}

// FromConfig builds a Pipeline from the application configuration. AI
// providers are created only when an API key is present, so local parsing
// and rule-based scoring work without one.
func FromConfig(cfg *config.Config, logger *errors.Logger) (*Pipeline, error) {
	taxonomy, err := loadTaxonomy(cfg, logger)
	if err != nil {
		return nil, err
	}

	p := parser.New(parser.Config{
		Taxonomy: taxonomy,
		Weights: parser.ConfidenceWeights{
			Email:      cfg.Parser.Weights.Email,
			Phone:      cfg.Parser.Weights.Phone,
			Name:       cfg.Parser.Weights.Name,
			Skills:     cfg.Parser.Weights.Skills,
			Experience: cfg.Parser.Weights.Experience,
			Education:  cfg.Parser.Weights.Education,
		},
	})

	analyzer := ats.NewAnalyzer(ats.Config{
		Weights: ats.Weights{
			Keyword:    cfg.ATS.Weights.Keyword,
			Content:    cfg.ATS.Weights.Content,
			Formatting: cfg.ATS.Weights.Formatting,
		},
		FormattingBase: cfg.ATS.FormattingBase,
	})

	pipe := &Pipeline{
		parser:   p,
		analyzer: analyzer,
		logger:   logger,
	}

	extractCfg := cfg.GetExtractConfig()
	if extractCfg.APIKey != "" {
		service, err := ai.NewService(&extractCfg, "extract", logger)
		if err != nil {
			return nil, err
		}
		pipe.extractProvider = service.Provider
	} else {
		logger.Debug("No API key configured, llm and hybrid parse modes disabled")
	}

	scoreCfg := cfg.GetScoreConfig()
	if scoreCfg.APIKey != "" {
		service, err := ai.NewService(&scoreCfg, "score", logger)
		if err != nil {
			return nil, err
		}
		pipe.scoreProvider = service.Provider
	}

	return pipe, nil
}

func loadTaxonomy(cfg *config.Config, logger *errors.Logger) (parser.Taxonomy, error) {
	if cfg.Parser.TaxonomyFile == "" {
		return nil, nil
	}
	taxonomy, err := parser.LoadTaxonomyFile(cfg.Parser.TaxonomyFile)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded skills taxonomy",
		"file", cfg.Parser.TaxonomyFile,
		"categories", len(taxonomy))
	return taxonomy, nil
}

// Parser exposes the underlying parser, mainly for taxonomy hot-reload.
func (p *Pipeline) Parser() *parser.Parser {
	return p.parser
}

// HasProvider reports whether an AI provider is configured for the llm and
// hybrid paths.
func (p *Pipeline) HasProvider() bool {
	return p.extractProvider != nil
}

// ParseText extracts a structured record from raw resume text using the
// requested mode. In hybrid mode a provider failure degrades to the local
// result; in llm mode it is returned to the caller.
func (p *Pipeline) ParseText(ctx context.Context, text string, mode Mode) (types.ResumeRecord, error) {
	if strings.TrimSpace(text) == "" {
		return types.ResumeRecord{}, errors.NewExtractionError(
			errors.ErrCodeNoTextExtracted,
			"no text content to parse",
			nil,
		)
	}

	switch mode {
	case ModeLocal, "":
		return p.parser.Parse(text)

	case ModeLLM:
		return p.llmParse(ctx, text)

	case ModeHybrid:
		return p.hybridParse(ctx, text)

	default:
		return types.ResumeRecord{}, errors.NewValidationError(
			errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid parse mode %q", mode),
			nil,
		)
	}
}

// ParseFile extracts text from the resume file at path and parses it. Local
// results from converted documents are tagged with the document source.
func (p *Pipeline) ParseFile(ctx context.Context, path string, mode Mode) (types.ResumeRecord, error) {
	text, err := extract.FromFile(path)
	if err != nil {
		return types.ResumeRecord{}, err
	}

	record, err := p.ParseText(ctx, text, mode)
	if err != nil {
		return types.ResumeRecord{}, err
	}

	if record.ParsingSource == types.SourceLocal && extract.RequiresConversion(filepath.Ext(path)) {
		record.ParsingSource = types.SourceLocalPDF
	}
	return record, nil
}

// llmParse sends the text to the AI provider and normalizes the flexible
// document it returns into the canonical record shape.
func (p *Pipeline) llmParse(ctx context.Context, text string) (types.ResumeRecord, error) {
	if p.extractProvider == nil {
		return types.ResumeRecord{}, errors.NewConfigError(
			errors.ErrCodeMissingAPIKey,
			"llm parse mode requires a configured AI provider",
			nil,
		)
	}

	doc, usage, err := p.extractProvider.ExtractResume(ctx, text)
	if err != nil {
		return types.ResumeRecord{}, err
	}

	record := schema.Normalize(doc, types.SourceLLM)
	record.RawText = parser.RawTextPreview(text)
	if record.ConfidenceScore == 0 {
		record.ConfidenceScore = p.parser.Confidence(record)
	}

	if usage != nil {
		p.logger.Debug("LLM extraction completed",
			"input_tokens", usage.InputTokens,
			"output_tokens", usage.OutputTokens,
			"total_tokens", usage.TotalTokens)
	}
	return record, nil
}

// hybridParse runs both paths and merges the results. The local record is
// the floor: provider failures degrade to it instead of failing the request.
func (p *Pipeline) hybridParse(ctx context.Context, text string) (types.ResumeRecord, error) {
	local, err := p.parser.Parse(text)
	if err != nil {
		return types.ResumeRecord{}, err
	}

	llm, err := p.llmParse(ctx, text)
	if err != nil {
		p.logger.Warn("LLM extraction failed, returning local result",
			"error", err.Error())
		return local, nil
	}

	return schema.Merge(local, llm), nil
}

// Score analyzes a parsed record against a job description. Modes llm and
// hybrid use the AI provider when available and fall back to the rule-based
// analyzer on any provider failure; mode local skips the provider entirely.
func (p *Pipeline) Score(ctx context.Context, record types.ResumeRecord, jobDescription string, mode Mode) (types.ATSAnalysis, error) {
	if mode != ModeLocal && p.scoreProvider != nil {
		analysis, usage, err := p.scoreProvider.ScoreResume(ctx, record, jobDescription)
		if err == nil {
			analysis.AnalysisMethod = "llm"
			if usage != nil {
				p.logger.Debug("LLM scoring completed",
					"input_tokens", usage.InputTokens,
					"output_tokens", usage.OutputTokens,
					"total_tokens", usage.TotalTokens)
			}
			return analysis, nil
		}
		p.logger.Warn("LLM scoring failed, falling back to rule-based analyzer",
			"error", err.Error())
	}

	return p.analyzer.Analyze(record, jobDescription), nil
}

// Optimize runs the checklist-style scorer. It never uses a provider.
func (p *Pipeline) Optimize(record types.ResumeRecord, jobDescription string) types.OptimizeResult {
	return ats.Optimize(record, jobDescription)
}

// Close releases any provider resources.
func (p *Pipeline) Close() error {
	var firstErr error
	if p.extractProvider != nil {
		if err := p.extractProvider.Close(); err != nil {
			firstErr = err
		}
	}
	if p.scoreProvider != nil {
		if err := p.scoreProvider.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
