package ats

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"parsume/internal/types"
)

// Weights controls how sub-scores combine into the overall score. When the
// job description is empty the keyword weight is redistributed over the
// remaining two proportionally.
type Weights struct {
	Keyword    float64
	Content    float64
	Formatting float64
}

// DefaultWeights returns the standard sub-score weighting.
func DefaultWeights() Weights {
	return Weights{Keyword: 0.4, Content: 0.4, Formatting: 0.2}
}

// Config carries the tunable parts of the analyzer.
type Config struct {
	Weights Weights
	// FormattingBase is the starting formatting score before adjustments.
	FormattingBase int
}

// DefaultConfig returns the standard analyzer configuration.
func DefaultConfig() Config {
	return Config{Weights: DefaultWeights(), FormattingBase: 80}
}

// Analyzer produces rule-based compatibility reports.
type Analyzer struct {
	weights        Weights
	formattingBase int
}

// NewAnalyzer builds an Analyzer from cfg. Zero weights fall back to the
// defaults.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}
	if cfg.FormattingBase == 0 {
		cfg.FormattingBase = 80
	}
	return &Analyzer{weights: cfg.Weights, formattingBase: cfg.FormattingBase}
}

var (
	quantifiedPattern = regexp.MustCompile(`\d+%|\$\d+|\d+\+`)
	emailInText       = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneInText       = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
)

var actionVerbs = []string{
	"led", "managed", "developed", "created", "implemented",
	"improved", "increased", "reduced",
}

var standardSections = []string{"experience", "education", "skills", "summary"}

// Analyze scores record against jobDescription. An empty job description is
// valid: the keyword sub-analysis is marked skipped and its weight is spread
// over content and formatting.
func (a *Analyzer) Analyze(record types.ResumeRecord, jobDescription string) types.ATSAnalysis {
	text := record.RawText
	if strings.TrimSpace(text) == "" {
		text = searchableText(record)
	}
	if strings.TrimSpace(text) == "" {
		return defaultAnalysis()
	}

	keyword := a.analyzeKeywords(record, jobDescription)
	content := a.analyzeContent(text)
	formatting := a.analyzeFormatting(text)

	overall := a.combine(keyword, content.Score, formatting.Score)

	skills := types.SkillsAnalysis{
		Score:         roundInt(float64(keyword.Score) * 0.9),
		MatchedSkills: head(keyword.MatchedKeywords, 8),
		MissingSkills: head(keyword.MissingKeywords, 8),
		Recommendations: []string{
			"Add technical skills mentioned in the job description",
			"Include relevant certifications",
		},
	}
	experience := types.ExperienceAnalysis{
		Score:    roundInt(float64(content.Score) * 0.9),
		Relevant: experienceTitles(record),
		Gaps:     []string{"Industry-specific experience"},
		Recommendations: []string{
			"Highlight relevant project experience",
			"Quantify achievements with metrics",
		},
	}

	return types.ATSAnalysis{
		OverallScore:       overall,
		KeywordAnalysis:    keyword,
		ContentAnalysis:    content,
		FormattingAnalysis: formatting,
		SkillsAnalysis:     skills,
		ExperienceAnalysis: experience,
		ImprovementPriority: types.ImprovementPriority{
			High:   []string{"Add missing critical keywords", "Include quantified achievements"},
			Medium: []string{"Improve section formatting", "Expand technical skills"},
			Low:    []string{"Add professional summary", "Include additional certifications"},
		},
		OptimizationTips: []string{
			"Use standard section headers like 'Work Experience', 'Education', 'Skills'",
			"Include keywords from the job description naturally",
			"Quantify achievements with specific numbers and percentages",
			"Save resume as PDF to preserve formatting",
			"Avoid graphics, tables, and unusual fonts",
		},
		PredictedPassRate: roundInt(float64(overall) * 0.85),
		Summary: fmt.Sprintf("ATS compatibility score: %d/100. Focus on keyword optimization and content improvements.",
			overall),
		AnalysisMethod: "rule_based",
	}
}

// combine applies the configured weights, renormalizing when the keyword
// sub-analysis was skipped.
func (a *Analyzer) combine(keyword types.KeywordAnalysis, content, formatting int) int {
	if keyword.Skipped {
		total := a.weights.Content + a.weights.Formatting
		if total == 0 {
			return 0
		}
		return clampScore(roundInt(
			(float64(content)*a.weights.Content + float64(formatting)*a.weights.Formatting) / total))
	}
	return clampScore(roundInt(
		float64(keyword.Score)*a.weights.Keyword +
			float64(content)*a.weights.Content +
			float64(formatting)*a.weights.Formatting))
}

func (a *Analyzer) analyzeKeywords(record types.ResumeRecord, jobDescription string) types.KeywordAnalysis {
	if strings.TrimSpace(jobDescription) == "" {
		return types.KeywordAnalysis{
			Skipped:         true,
			Recommendations: []string{"Provide a job description to enable keyword matching"},
		}
	}

	match := MatchKeywords(record, jobDescription)

	recommendation := "Keyword coverage is good"
	if len(match.Missing) > 0 {
		recommendation = "Add missing keywords: " + strings.Join(head(match.Missing, 5), ", ")
	}

	return types.KeywordAnalysis{
		Score:           roundInt(match.MatchPercentage),
		MatchedKeywords: head(match.Matching, 10),
		MissingKeywords: head(match.Missing, 10),
		Recommendations: []string{recommendation},
	}
}

func (a *Analyzer) analyzeContent(text string) types.ContentAnalysis {
	score := 0
	lower := strings.ToLower(text)

	if quantifiedPattern.MatchString(text) {
		score += 30
	}

	verbCount := 0
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			verbCount++
		}
	}
	score += min(20, verbCount*3)

	sectionCount := 0
	for _, section := range []string{"experience", "education", "skills", "summary", "objective"} {
		if strings.Contains(lower, section) {
			sectionCount++
		}
	}
	score += min(30, sectionCount*8)

	switch {
	case len(text) >= 1000 && len(text) <= 5000:
		score += 20
	case len(text) < 1000:
		score += 10
	}

	return types.ContentAnalysis{
		Score:           min(100, score),
		Strengths:       identifyStrengths(lower),
		Weaknesses:      identifyWeaknesses(text, lower),
		MissingSections: missingSections(lower),
		Recommendations: []string{
			"Add quantified achievements",
			"Include more specific technical skills",
			"Expand professional summary",
		},
	}
}

func (a *Analyzer) analyzeFormatting(text string) types.FormattingAnalysis {
	score := a.formattingBase

	lines := strings.Split(text, "\n")
	if len(lines) < 10 {
		score -= 20
	}
	if emailInText.MatchString(text) {
		score += 10
	}
	if phoneInText.MatchString(text) {
		score += 10
	}

	return types.FormattingAnalysis{
		Score:  clampScore(score),
		Issues: formattingIssues(text, lines),
		Recommendations: []string{
			"Use standard section headers",
			"Ensure consistent formatting",
			"Avoid complex layouts",
		},
	}
}

func identifyStrengths(lower string) []string {
	strengths := []string{}
	if containsAny(lower, "led", "managed", "supervised") {
		strengths = append(strengths, "Shows leadership experience")
	}
	if containsAny(lower, "%", "increased", "improved", "reduced") {
		strengths = append(strengths, "Includes quantified achievements")
	}
	techCount := 0
	for _, tech := range []string{"python", "java", "javascript", "sql"} {
		if strings.Contains(lower, tech) {
			techCount++
		}
	}
	if techCount >= 2 {
		strengths = append(strengths, "Strong technical skills")
	}
	if containsAny(lower, "education", "degree") {
		strengths = append(strengths, "Educational background included")
	}
	return head(strengths, 5)
}

func identifyWeaknesses(text, lower string) []string {
	weaknesses := []string{}
	if !containsAny(lower, "summary", "objective") {
		weaknesses = append(weaknesses, "Missing professional summary")
	}
	if !containsAny(lower, "%", "increased", "improved", "reduced") {
		weaknesses = append(weaknesses, "Lacks quantified achievements")
	}
	if len(text) < 1000 {
		weaknesses = append(weaknesses, "Resume may be too brief")
	}
	if !strings.Contains(lower, "skills") {
		weaknesses = append(weaknesses, "Skills section not clearly defined")
	}
	return head(weaknesses, 5)
}

func missingSections(lower string) []string {
	missing := []string{}
	for _, section := range standardSections {
		if !strings.Contains(lower, section) {
			missing = append(missing, section)
		}
	}
	return missing
}

func formattingIssues(text string, lines []string) []string {
	issues := []string{}
	if len(lines) < 10 {
		issues = append(issues, "May need better section separation")
	}
	if strings.Contains(text, "\t") {
		issues = append(issues, "Contains tab characters")
	}
	if !emailInText.MatchString(text) {
		issues = append(issues, "Email address not clearly visible")
	}
	return head(issues, 3)
}

func experienceTitles(record types.ResumeRecord) []string {
	if len(record.Experience) == 0 {
		return []string{"Previous roles analyzed"}
	}
	titles := make([]string, 0, len(record.Experience))
	for _, exp := range record.Experience {
		titles = append(titles, exp.Title)
	}
	return titles
}

// defaultAnalysis is returned when there is nothing to score.
func defaultAnalysis() types.ATSAnalysis {
	return types.ATSAnalysis{
		OptimizationTips: []string{},
		Summary:          "Analysis failed",
		AnalysisMethod:   "failed",
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func head(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
