package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"parsume/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ResumeRecord", &ResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeRecord", &ResumeMarkdownFormatter{})
	registry.RegisterFormatter("text", "ATSAnalysis", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "ATSAnalysis", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "OptimizeResult", &OptimizeTextFormatter{})
	registry.RegisterFormatter("markdown", "OptimizeResult", &OptimizeMarkdownFormatter{})
	registry.RegisterFormatter("latex", "ResumeRecord", &ResumeLatexFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ResumeRecord:
		return "ResumeRecord"
	case types.ATSAnalysis:
		return "ATSAnalysis"
	case types.OptimizeResult:
		return "OptimizeResult"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func writeList(output *strings.Builder, items []string) {
	for _, item := range items {
		output.WriteString(fmt.Sprintf("- %s\n", item))
	}
}

// ResumeTextFormatter handles text formatting for parsed resumes
type ResumeTextFormatter struct{}

func (rtf *ResumeTextFormatter) Format(data any) (string, error) {
	record, ok := data.(types.ResumeRecord)
	if !ok {
		return "", fmt.Errorf("expected ResumeRecord, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== PARSED RESUME ===\n\n")
	output.WriteString(fmt.Sprintf("Name: %s\n", record.Name))
	output.WriteString(fmt.Sprintf("Email: %s\n", strings.Join(record.Email, ", ")))
	output.WriteString(fmt.Sprintf("Phone: %s\n", strings.Join(record.MobileNumber, ", ")))
	output.WriteString(fmt.Sprintf("Source: %s | Confidence: %.2f\n\n", record.ParsingSource, record.ConfidenceScore))

	if record.Summary != "" {
		output.WriteString("Summary:\n")
		output.WriteString(record.Summary)
		output.WriteString("\n\n")
	}

	if len(record.Skills) > 0 {
		output.WriteString("Skills:\n")
		writeList(&output, record.Skills)
		output.WriteString("\n")
	}

	if len(record.Experience) > 0 {
		output.WriteString("Experience:\n")
		for i, exp := range record.Experience {
			output.WriteString(fmt.Sprintf("%d. %s", i+1, exp.Title))
			if exp.Company != "" {
				output.WriteString(fmt.Sprintf(" at %s", exp.Company))
			}
			if exp.Duration != "" {
				output.WriteString(fmt.Sprintf(" (%s)", exp.Duration))
			}
			output.WriteString("\n")
			if exp.Description != "" {
				output.WriteString("   ")
				output.WriteString(exp.Description)
				output.WriteString("\n")
			}
		}
		output.WriteString("\n")
	}

	if len(record.Education) > 0 {
		output.WriteString("Education:\n")
		for _, edu := range record.Education {
			output.WriteString(fmt.Sprintf("- %s", edu.Degree))
			if edu.FieldOfStudy != "" {
				output.WriteString(fmt.Sprintf(" in %s", edu.FieldOfStudy))
			}
			if edu.Institution != "" {
				output.WriteString(fmt.Sprintf(", %s", edu.Institution))
			}
			if edu.Year != "" {
				output.WriteString(fmt.Sprintf(" (%s)", edu.Year))
			}
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if len(record.Projects) > 0 {
		output.WriteString("Projects:\n")
		for _, proj := range record.Projects {
			output.WriteString(fmt.Sprintf("- %s", proj.Name))
			if proj.Description != "" {
				output.WriteString(fmt.Sprintf(": %s", proj.Description))
			}
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if len(record.Certifications) > 0 {
		output.WriteString("Certifications:\n")
		writeList(&output, record.Certifications)
	}

	return output.String(), nil
}

func (rtf *ResumeTextFormatter) SupportedType() string {
	return "ResumeRecord"
}

// ResumeMarkdownFormatter handles markdown formatting for parsed resumes
type ResumeMarkdownFormatter struct{}

func (rmf *ResumeMarkdownFormatter) Format(data any) (string, error) {
	record, ok := data.(types.ResumeRecord)
	if !ok {
		return "", fmt.Errorf("expected ResumeRecord, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Parsed Resume\n\n")
	output.WriteString(fmt.Sprintf("**Name:** %s\n\n", record.Name))
	output.WriteString(fmt.Sprintf("**Email:** %s\n\n", strings.Join(record.Email, ", ")))
	output.WriteString(fmt.Sprintf("**Phone:** %s\n\n", strings.Join(record.MobileNumber, ", ")))
	output.WriteString(fmt.Sprintf("**Source:** %s | **Confidence:** %.2f\n\n", record.ParsingSource, record.ConfidenceScore))

	if record.Summary != "" {
		output.WriteString("## Summary\n\n")
		output.WriteString(record.Summary)
		output.WriteString("\n\n")
	}

	if len(record.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		writeList(&output, record.Skills)
		output.WriteString("\n")
	}

	if len(record.Experience) > 0 {
		output.WriteString("## Experience\n\n")
		for _, exp := range record.Experience {
			output.WriteString(fmt.Sprintf("### %s", exp.Title))
			if exp.Company != "" {
				output.WriteString(fmt.Sprintf(" at %s", exp.Company))
			}
			output.WriteString("\n\n")
			if exp.Duration != "" {
				output.WriteString(fmt.Sprintf("*%s*\n\n", exp.Duration))
			}
			if exp.Description != "" {
				output.WriteString(exp.Description)
				output.WriteString("\n\n")
			}
		}
	}

	if len(record.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, edu := range record.Education {
			output.WriteString(fmt.Sprintf("- **%s**", edu.Degree))
			if edu.FieldOfStudy != "" {
				output.WriteString(fmt.Sprintf(" in %s", edu.FieldOfStudy))
			}
			if edu.Institution != "" {
				output.WriteString(fmt.Sprintf(", %s", edu.Institution))
			}
			if edu.Year != "" {
				output.WriteString(fmt.Sprintf(" (%s)", edu.Year))
			}
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if len(record.Projects) > 0 {
		output.WriteString("## Projects\n\n")
		for _, proj := range record.Projects {
			output.WriteString(fmt.Sprintf("- **%s**", proj.Name))
			if proj.Description != "" {
				output.WriteString(fmt.Sprintf(": %s", proj.Description))
			}
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if len(record.Certifications) > 0 {
		output.WriteString("## Certifications\n\n")
		writeList(&output, record.Certifications)
	}

	return output.String(), nil
}

func (rmf *ResumeMarkdownFormatter) SupportedType() string {
	return "ResumeRecord"
}

// AnalysisTextFormatter handles text formatting for ATS analysis results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ATSAnalysis)
	if !ok {
		return "", fmt.Errorf("expected ATSAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS COMPATIBILITY ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("Predicted ATS Pass Rate: %d%%\n", result.PredictedPassRate))
	output.WriteString(fmt.Sprintf("Analysis Method: %s\n\n", result.AnalysisMethod))

	if result.Summary != "" {
		output.WriteString("Summary:\n")
		output.WriteString(result.Summary)
		output.WriteString("\n\n")
	}

	output.WriteString("=== KEYWORD ANALYSIS ===\n")
	if result.KeywordAnalysis.Skipped {
		output.WriteString("Skipped: no job description provided\n\n")
	} else {
		output.WriteString(fmt.Sprintf("Score: %d/100\n", result.KeywordAnalysis.Score))
		if len(result.KeywordAnalysis.MatchedKeywords) > 0 {
			output.WriteString("Matched Keywords:\n")
			writeList(&output, result.KeywordAnalysis.MatchedKeywords)
		}
		if len(result.KeywordAnalysis.MissingKeywords) > 0 {
			output.WriteString("Missing Critical Keywords:\n")
			writeList(&output, result.KeywordAnalysis.MissingKeywords)
		}
		output.WriteString("\n")
	}

	output.WriteString("=== CONTENT ANALYSIS ===\n")
	output.WriteString(fmt.Sprintf("Score: %d/100\n", result.ContentAnalysis.Score))
	if len(result.ContentAnalysis.Strengths) > 0 {
		output.WriteString("Strengths:\n")
		writeList(&output, result.ContentAnalysis.Strengths)
	}
	if len(result.ContentAnalysis.Weaknesses) > 0 {
		output.WriteString("Weaknesses:\n")
		writeList(&output, result.ContentAnalysis.Weaknesses)
	}
	if len(result.ContentAnalysis.MissingSections) > 0 {
		output.WriteString("Missing Sections:\n")
		writeList(&output, result.ContentAnalysis.MissingSections)
	}
	output.WriteString("\n")

	output.WriteString("=== FORMATTING ANALYSIS ===\n")
	output.WriteString(fmt.Sprintf("Score: %d/100\n", result.FormattingAnalysis.Score))
	if len(result.FormattingAnalysis.Issues) > 0 {
		output.WriteString("Issues:\n")
		writeList(&output, result.FormattingAnalysis.Issues)
	}
	output.WriteString("\n")

	if len(result.ImprovementPriority.High) > 0 {
		output.WriteString("=== HIGH PRIORITY IMPROVEMENTS ===\n")
		writeList(&output, result.ImprovementPriority.High)
		output.WriteString("\n")
	}

	if len(result.OptimizationTips) > 0 {
		output.WriteString("=== OPTIMIZATION TIPS ===\n")
		for i, tip := range result.OptimizationTips {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, tip))
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "ATSAnalysis"
}

// AnalysisMarkdownFormatter handles markdown formatting for ATS analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ATSAnalysis)
	if !ok {
		return "", fmt.Errorf("expected ATSAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Compatibility Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("**Predicted ATS Pass Rate:** %d%%\n\n", result.PredictedPassRate))
	output.WriteString(fmt.Sprintf("**Analysis Method:** %s\n\n", result.AnalysisMethod))

	if result.Summary != "" {
		output.WriteString("## Summary\n\n")
		output.WriteString(result.Summary)
		output.WriteString("\n\n")
	}

	output.WriteString("## Keyword Analysis\n\n")
	if result.KeywordAnalysis.Skipped {
		output.WriteString("Skipped: no job description provided.\n\n")
	} else {
		output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", result.KeywordAnalysis.Score))
		if len(result.KeywordAnalysis.MatchedKeywords) > 0 {
			output.WriteString("### Matched Keywords\n")
			writeList(&output, result.KeywordAnalysis.MatchedKeywords)
			output.WriteString("\n")
		}
		if len(result.KeywordAnalysis.MissingKeywords) > 0 {
			output.WriteString("### Missing Critical Keywords\n")
			writeList(&output, result.KeywordAnalysis.MissingKeywords)
			output.WriteString("\n")
		}
	}

	output.WriteString("## Content Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", result.ContentAnalysis.Score))
	if len(result.ContentAnalysis.Strengths) > 0 {
		output.WriteString("### Strengths\n")
		writeList(&output, result.ContentAnalysis.Strengths)
		output.WriteString("\n")
	}
	if len(result.ContentAnalysis.Weaknesses) > 0 {
		output.WriteString("### Weaknesses\n")
		writeList(&output, result.ContentAnalysis.Weaknesses)
		output.WriteString("\n")
	}
	if len(result.ContentAnalysis.MissingSections) > 0 {
		output.WriteString("### Missing Sections\n")
		writeList(&output, result.ContentAnalysis.MissingSections)
		output.WriteString("\n")
	}

	output.WriteString("## Formatting Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", result.FormattingAnalysis.Score))
	if len(result.FormattingAnalysis.Issues) > 0 {
		output.WriteString("### Issues\n")
		writeList(&output, result.FormattingAnalysis.Issues)
		output.WriteString("\n")
	}

	if len(result.ImprovementPriority.High) > 0 {
		output.WriteString("## High Priority Improvements\n\n")
		writeList(&output, result.ImprovementPriority.High)
		output.WriteString("\n")
	}

	if len(result.OptimizationTips) > 0 {
		output.WriteString("## Optimization Tips\n\n")
		for i, tip := range result.OptimizationTips {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, tip))
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "ATSAnalysis"
}

// OptimizeTextFormatter handles text formatting for checklist results
type OptimizeTextFormatter struct{}

func (otf *OptimizeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.OptimizeResult)
	if !ok {
		return "", fmt.Errorf("expected OptimizeResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS OPTIMIZATION REPORT ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/%d\n\n", result.Score, result.MaxScore))

	if len(result.Suggestions) > 0 {
		output.WriteString("Suggestions:\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
		output.WriteString("\n")
	}

	if result.Keywords != nil {
		output.WriteString("=== KEYWORD MATCHING ===\n")
		output.WriteString(fmt.Sprintf("Match: %.1f%% (%d of %d keywords)\n",
			result.Keywords.MatchPercentage, len(result.Keywords.Matching), result.Keywords.TotalKeywords))
		if len(result.Keywords.Missing) > 0 {
			output.WriteString("Missing Keywords:\n")
			writeList(&output, result.Keywords.Missing)
		}
		output.WriteString("\n")
	}

	if len(result.Formatting) > 0 {
		output.WriteString("Formatting Suggestions:\n")
		writeList(&output, result.Formatting)
	}

	return output.String(), nil
}

func (otf *OptimizeTextFormatter) SupportedType() string {
	return "OptimizeResult"
}

// OptimizeMarkdownFormatter handles markdown formatting for checklist results
type OptimizeMarkdownFormatter struct{}

func (omf *OptimizeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.OptimizeResult)
	if !ok {
		return "", fmt.Errorf("expected OptimizeResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Optimization Report\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/%d\n\n", result.Score, result.MaxScore))

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
		output.WriteString("\n")
	}

	if result.Keywords != nil {
		output.WriteString("## Keyword Matching\n\n")
		output.WriteString(fmt.Sprintf("**Match:** %.1f%% (%d of %d keywords)\n\n",
			result.Keywords.MatchPercentage, len(result.Keywords.Matching), result.Keywords.TotalKeywords))
		if len(result.Keywords.Missing) > 0 {
			output.WriteString("### Missing Keywords\n")
			writeList(&output, result.Keywords.Missing)
			output.WriteString("\n")
		}
	}

	if len(result.Formatting) > 0 {
		output.WriteString("## Formatting Suggestions\n\n")
		writeList(&output, result.Formatting)
	}

	return output.String(), nil
}

func (omf *OptimizeMarkdownFormatter) SupportedType() string {
	return "OptimizeResult"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
