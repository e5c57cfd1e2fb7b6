package ats

import (
	"strings"

	"parsume/internal/types"
)

const (
	optimizeMaxScore   = 100
	maxSuggestions     = 10
	minSummaryLength   = 50
	goodSkillCount     = 5
	strongSkillCount   = 10
	multiRoleThreshold = 2
)

// technicalSkillKeywords decide whether a skill list carries technical
// weight for the checklist score.
var technicalSkillKeywords = []string{
	"python", "java", "javascript", "sql", "html", "css", "react", "node", "aws", "docker",
}

var achievementIndicators = []string{"%", "$", "increased", "decreased", "improved", "reduced"}

// Optimize runs the checklist-based score used by the optimize operation:
// points for completeness of contact data, skills quality, experience depth,
// education, and summary, with keyword matching folded in when a job
// description is supplied. Suggestions are capped at ten, with a verdict
// line always first.
func Optimize(record types.ResumeRecord, jobDescription string) types.OptimizeResult {
	score := 0
	suggestions := []string{}

	if strings.TrimSpace(record.Name) != "" {
		score += 5
	} else {
		suggestions = append(suggestions, "Add your full name at the top of the resume")
	}
	if len(record.Email) > 0 {
		score += 5
	} else {
		suggestions = append(suggestions, "Include a professional email address")
	}
	if len(record.MobileNumber) > 0 {
		score += 5
	} else {
		suggestions = append(suggestions, "Add your phone number")
	}
	if len(record.Skills) > 0 {
		score += 5
	} else {
		suggestions = append(suggestions, "Include a skills section with relevant technical and soft skills")
	}

	if len(record.Skills) >= goodSkillCount {
		score += 10
		if len(record.Skills) >= strongSkillCount {
			score += 5
		}
	} else {
		suggestions = append(suggestions, "Add more skills (aim for 10-15 relevant skills)")
	}

	if hasTechnicalSkills(record.Skills) {
		score += 10
	} else {
		suggestions = append(suggestions, "Include more technical skills relevant to your field")
	}

	if len(record.Experience) > 0 {
		score += 10
		if len(record.Experience) >= multiRoleThreshold {
			score += 5
		}
		if hasQuantifiedAchievements(record.Experience) {
			score += 10
		} else {
			suggestions = append(suggestions,
				"Add quantified achievements to your experience (e.g., 'Increased efficiency by 20%')")
		}
	} else {
		suggestions = append(suggestions, "Include work experience with specific achievements")
	}

	if len(record.Education) > 0 {
		score += 15
	} else {
		suggestions = append(suggestions, "Add your educational background")
	}

	if len(record.Summary) > minSummaryLength {
		score += 15
	} else {
		suggestions = append(suggestions,
			"Add a professional summary (2-3 sentences highlighting your key strengths)")
	}

	var keywords *types.KeywordMatchResult
	if strings.TrimSpace(jobDescription) != "" {
		keywords = MatchKeywords(record, jobDescription)
		switch {
		case keywords.MatchPercentage >= 70:
			// Coverage is already good.
		case keywords.MatchPercentage >= 50:
			suggestions = append(suggestions,
				"Consider adding these missing keywords: "+strings.Join(head(keywords.Missing, 5), ", "))
		default:
			suggestions = append(suggestions,
				"Significantly improve keyword matching with the job description")
		}
	}

	finalScore := min(score, optimizeMaxScore)
	suggestions = append([]string{verdict(finalScore)}, suggestions...)

	return types.OptimizeResult{
		Score:       finalScore,
		MaxScore:    optimizeMaxScore,
		Suggestions: head(suggestions, maxSuggestions),
		Keywords:    keywords,
		Formatting:  formattingSuggestions(record),
	}
}

func verdict(score int) string {
	switch {
	case score < 50:
		return "Your resume needs significant improvement for ATS compatibility"
	case score < 70:
		return "Your resume is moderately ATS-friendly but has room for improvement"
	case score < 85:
		return "Your resume is well-optimized for ATS with minor improvements needed"
	default:
		return "Excellent! Your resume is highly optimized for ATS systems"
	}
}

func hasTechnicalSkills(skills []string) bool {
	for _, skill := range skills {
		lower := strings.ToLower(skill)
		for _, tech := range technicalSkillKeywords {
			if strings.Contains(lower, tech) {
				return true
			}
		}
	}
	return false
}

func hasQuantifiedAchievements(experience []types.ExperienceEntry) bool {
	var b strings.Builder
	for _, exp := range experience {
		b.WriteString(strings.ToLower(exp.Description))
		b.WriteString(" ")
	}
	text := b.String()
	for _, indicator := range achievementIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}

func formattingSuggestions(record types.ResumeRecord) []string {
	out := []string{}

	lower := strings.ToLower(record.RawText)
	missing := []string{}
	for _, section := range standardSections {
		if !strings.Contains(lower, section) {
			missing = append(missing, section)
		}
	}
	if len(missing) > 0 {
		out = append(out, "Use standard section headers: "+strings.Join(missing, ", "))
	}

	return append(out,
		"Use simple, clean formatting without graphics or unusual fonts",
		"Avoid tables, text boxes, and columns",
		"Use bullet points for achievements and responsibilities",
		"Save as PDF to preserve formatting",
		"Use standard fonts like Arial, Calibri, or Times New Roman",
	)
}
