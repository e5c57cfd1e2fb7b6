package types

// ParseSource identifies which extraction path produced a ResumeRecord.
type ParseSource string

const (
	SourceLocal    ParseSource = "local"
	SourceLLM      ParseSource = "llm"
	SourceHybrid   ParseSource = "hybrid"
	SourceLocalPDF ParseSource = "local_pdf"
)

// ResumeRecord is the canonical structured output of a parse operation.
// List fields are always non-nil; ConfidenceScore is clamped to [0,1].
type ResumeRecord struct {
	Name            string            `json:"name"`
	Email           []string          `json:"email"`
	MobileNumber    []string          `json:"mobile_number"`
	Skills          []string          `json:"skills"`
	Education       []EducationEntry  `json:"education"`
	Experience      []ExperienceEntry `json:"experience"`
	Projects        []ProjectEntry    `json:"projects"`
	Summary         string            `json:"summary"`
	Certifications  []string          `json:"certifications"`
	RawText         string            `json:"raw_text"`
	ParsingSource   ParseSource       `json:"parsing_source"`
	ConfidenceScore float64           `json:"confidence_score"`

	// Sections from an external extraction source that did not map onto any
	// canonical field. Preserved so no information is silently dropped.
	AdditionalSections map[string]any `json:"additional_sections,omitempty"`
}

// EducationLevel classifies a degree by its text.
type EducationLevel string

const (
	LevelBachelors EducationLevel = "bachelors"
	LevelMasters   EducationLevel = "masters"
	LevelDoctorate EducationLevel = "doctorate"
	LevelDiploma   EducationLevel = "diploma"
	LevelOther     EducationLevel = "other"
)

// EducationEntry describes a single education item. All fields are optional
// free text; Type is derived from Degree.
type EducationEntry struct {
	Degree       string         `json:"degree"`
	Institution  string         `json:"institution"`
	FieldOfStudy string         `json:"field_of_study,omitempty"`
	Year         string         `json:"year,omitempty"`
	Type         EducationLevel `json:"type"`
}

// ExperienceEntry describes a single job. Duration is kept as the matched
// text span; ambiguous date ranges are not reformatted.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProjectEntry describes a project mention found in the resume.
type ProjectEntry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ATSAnalysis is the full compatibility report for a resume against a job
// description. Scores are integers in [0,100].
type ATSAnalysis struct {
	OverallScore        int                 `json:"overall_score"`
	KeywordAnalysis     KeywordAnalysis     `json:"keyword_analysis"`
	ContentAnalysis     ContentAnalysis     `json:"content_analysis"`
	FormattingAnalysis  FormattingAnalysis  `json:"formatting_analysis"`
	SkillsAnalysis      SkillsAnalysis      `json:"skills_analysis"`
	ExperienceAnalysis  ExperienceAnalysis  `json:"experience_analysis"`
	ImprovementPriority ImprovementPriority `json:"improvement_priority"`
	OptimizationTips    []string            `json:"ats_optimization_tips"`
	PredictedPassRate   int                 `json:"predicted_ats_pass_rate"`
	Summary             string              `json:"summary"`
	AnalysisMethod      string              `json:"analysis_method"`
}

// KeywordAnalysis compares job-description keywords against resume content.
// Skipped means the job description was empty and the sub-analysis carries
// no weight.
type KeywordAnalysis struct {
	Score           int      `json:"keyword_match_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_critical_keywords"`
	Recommendations []string `json:"recommendations"`
	Skipped         bool     `json:"skipped,omitempty"`
}

// ContentAnalysis assesses achievements, completeness, and section quality.
type ContentAnalysis struct {
	Score           int      `json:"content_score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	MissingSections []string `json:"missing_sections"`
	Recommendations []string `json:"recommendations"`
}

// FormattingAnalysis flags layout properties that confuse ATS systems.
type FormattingAnalysis struct {
	Score           int      `json:"formatting_score"`
	Issues          []string `json:"formatting_issues"`
	Recommendations []string `json:"recommendations"`
}

// SkillsAnalysis compares resume skills with job-description skills.
type SkillsAnalysis struct {
	Score           int      `json:"skills_match_score"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	Recommendations []string `json:"recommendations"`
}

// ExperienceAnalysis assesses experience relevance and depth.
type ExperienceAnalysis struct {
	Score           int      `json:"experience_score"`
	Relevant        []string `json:"relevant_experience"`
	Gaps            []string `json:"experience_gaps"`
	Recommendations []string `json:"recommendations"`
}

// ImprovementPriority orders suggested fixes by expected impact.
type ImprovementPriority struct {
	High   []string `json:"high_priority"`
	Medium []string `json:"medium_priority"`
	Low    []string `json:"low_priority"`
}

// OptimizeResult is the output of the simpler checklist-based scoring path.
type OptimizeResult struct {
	Score       int                 `json:"score"`
	MaxScore    int                 `json:"max_score"`
	Suggestions []string            `json:"suggestions"`
	Keywords    *KeywordMatchResult `json:"keywords,omitempty"`
	Formatting  []string            `json:"formatting_suggestions"`
}

// KeywordMatchResult summarizes keyword overlap between a resume and a job
// description.
type KeywordMatchResult struct {
	JobKeywords     []string `json:"job_keywords"`
	Matching        []string `json:"matching_keywords"`
	Missing         []string `json:"missing_keywords"`
	MatchPercentage float64  `json:"match_percentage"`
	TotalKeywords   int      `json:"total_keywords"`
}
