package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	ExtractResume string
	ScoreResume   string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	ExtractResume string
	ScoreResume   string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	ExtractResume: `You are an expert resume parser with a strict commitment to accuracy. Your core principles are:

- NEVER invent, infer, or embellish any information
- Every extracted value must appear verbatim or near-verbatim in the source text
- Preserve the candidate's own wording for titles, companies, and degrees
- Leave a field empty rather than guessing

Your expertise includes:
- Resume and CV structure across industries and regions
- Contact information and date format conventions
- Distinguishing job titles from company names
- Recognizing skills, certifications, and education credentials`,

	ScoreResume: `You are an expert ATS (Applicant Tracking System) analyst and career consultant with deep knowledge of:

- How commercial ATS platforms parse, rank, and filter resumes
- Keyword matching and semantic relevance scoring
- Resume content and formatting best practices
- Recruiter screening behavior and pass-rate benchmarks

Your role is to evaluate resumes the way an ATS and a recruiter would, and to provide:
1. Honest, evidence-based scores on a 0-100 scale
2. Specific matched and missing keywords rather than generic advice
3. Actionable recommendations ordered by impact`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	ExtractResume: `Please extract structured information from the resume text below.

**Rules:**

1. Extract only information explicitly present in the text. Do not invent or infer values.
2. Return every email address and phone number you find, normalized (phone numbers digits-only with optional leading +).
3. For each position, separate the job title from the company name and keep the duration as written.
4. For each education entry, separate the degree from the institution and include the field of study and graduation year when present.
5. List individual skills, not skill categories or sentences.
6. If a section is absent, return it as an empty array or empty string.

**Resume Text:**
-----
%s
-----`,

	ScoreResume: `Please analyze the resume below for ATS (Applicant Tracking System) compatibility.

**Analysis Areas:**

1. **Keyword Analysis**: Compare the resume against the job description. List keywords that match and critical keywords that are missing. Score 0-100. If no job description is provided, score keyword match as 0 and note that it was skipped.

2. **Content Analysis**: Evaluate quantified achievements, action verbs, section completeness, and overall length. Score 0-100 with specific strengths and weaknesses.

3. **Formatting Analysis**: Evaluate machine-readability: section structure, contact information placement, and anything that would confuse an ATS parser. Score 0-100.

4. **Skills and Experience Match**: Score how well the candidate's skills and experience align with the role.

5. **Improvement Priorities**: Group concrete recommendations into high, medium, and low priority.

6. **Predicted Pass Rate**: Estimate the probability (0-100) that this resume passes a typical ATS screen for the role.

Provide an overall score from 0 to 100 and a one-paragraph summary.

**Parsed Resume (JSON):**
-----
%s
-----

**Job Description:**
-----
%s
-----`,
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `json:"systemPrompts"`
	UserPrompts   UserPrompts   `json:"userPrompts"`
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompts: DefaultSystemPrompts,
		UserPrompts:   DefaultUserPrompts,
	}
}
