package parser

import (
	"strings"
	"sync"

	"parsume/internal/errors"
	"parsume/internal/types"
)

const rawTextPreviewLen = 1000

// ConfidenceWeights controls how much each extracted field contributes to the
// overall confidence score. The sum is clamped to [0, 1] after scoring.
type ConfidenceWeights struct {
	Email      float64
	Phone      float64
	Name       float64
	Skills     float64
	Experience float64
	Education  float64
}

// DefaultConfidenceWeights returns the standard field weights.
func DefaultConfidenceWeights() ConfidenceWeights {
	return ConfidenceWeights{
		Email:      0.2,
		Phone:      0.2,
		Name:       0.2,
		Skills:     0.2,
		Experience: 0.1,
		Education:  0.1,
	}
}

// Config carries the tunable parts of the parser. Zero values fall back to
// the defaults in New.
type Config struct {
	Taxonomy  Taxonomy
	Weights   ConfidenceWeights
	Validator NameValidator
}

// Parser runs the rule-based extraction pipeline over plain resume text.
// The skill taxonomy can be swapped at runtime, so Parse is safe for
// concurrent use.
type Parser struct {
	mu        sync.RWMutex
	skills    *skillMatcher
	weights   ConfidenceWeights
	validator NameValidator
}

// New builds a Parser from cfg. A nil taxonomy uses the built-in one; zero
// weights use the defaults; a nil validator disables NER-style checks and
// relies on the line heuristics alone.
func New(cfg Config) *Parser {
	taxonomy := cfg.Taxonomy
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	weights := cfg.Weights
	if weights == (ConfidenceWeights{}) {
		weights = DefaultConfidenceWeights()
	}
	return &Parser{
		skills:    newSkillMatcher(taxonomy),
		weights:   weights,
		validator: cfg.Validator,
	}
}

// Parse extracts a structured record from raw resume text. Text that is empty
// after cleaning yields a NO_TEXT_EXTRACTED error.
func (p *Parser) Parse(text string) (types.ResumeRecord, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return types.ResumeRecord{}, errors.NewExtractionError(
			errors.ErrCodeNoTextExtracted,
			"no text content to parse",
			nil,
		)
	}

	sections := Segment(cleaned)

	p.mu.RLock()
	skills := p.skills
	p.mu.RUnlock()

	record := types.ResumeRecord{
		Name:           ExtractName(cleaned, p.validator),
		Email:          ExtractEmails(cleaned),
		MobileNumber:   ExtractPhones(cleaned),
		Skills:         skills.ExtractSkills(sections.Get(SectionSkills, cleaned)),
		Experience:     ExtractExperience(sections.Get(SectionExperience, cleaned)),
		Education:      ExtractEducation(sections.Get(SectionEducation, cleaned)),
		Projects:       ExtractProjects(sections.Get(SectionProjects, cleaned)),
		Certifications: ExtractCertifications(sections.Get(SectionCertifications, cleaned)),
		Summary:        ExtractSummary(sections.Get(SectionPersonal, sections.Get(SectionGeneral, cleaned))),
		RawText:        rawTextPreview(cleaned),
		ParsingSource:  types.SourceLocal,
	}
	record.ConfidenceScore = p.confidence(record)
	return record, nil
}

// SetTaxonomy replaces the skill taxonomy used by subsequent Parse calls.
func (p *Parser) SetTaxonomy(taxonomy Taxonomy) {
	matcher := newSkillMatcher(taxonomy)
	p.mu.Lock()
	p.skills = matcher
	p.mu.Unlock()
}

// Confidence scores an arbitrary record by weighted field presence, clamped
// to [0, 1]. Parse applies this to its own output; callers that build records
// through other extraction paths can reuse the same scoring.
func (p *Parser) Confidence(record types.ResumeRecord) float64 {
	return p.confidence(record)
}

// confidence scores the record by weighted field presence, clamped to [0, 1].
func (p *Parser) confidence(record types.ResumeRecord) float64 {
	score := 0.0
	if len(record.Email) > 0 {
		score += p.weights.Email
	}
	if len(record.MobileNumber) > 0 {
		score += p.weights.Phone
	}
	if strings.TrimSpace(record.Name) != "" {
		score += p.weights.Name
	}
	if len(record.Skills) > 0 {
		score += p.weights.Skills
	}
	if len(record.Experience) > 0 {
		score += p.weights.Experience
	}
	if len(record.Education) > 0 {
		score += p.weights.Education
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// RawTextPreview truncates text to the stored raw-text length so records
// built outside Parse carry the same preview shape.
func RawTextPreview(text string) string {
	return rawTextPreview(text)
}

func rawTextPreview(text string) string {
	if len(text) > rawTextPreviewLen {
		return text[:rawTextPreviewLen] + "..."
	}
	return text
}
