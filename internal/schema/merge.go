package schema

import (
	"strings"

	"parsume/internal/types"
)

// Merge combines a locally parsed record with an AI-parsed record into a
// hybrid result. Scalar fields prefer the AI value when present; list fields
// holding contact data and skills are unioned case-insensitively with AI
// values first; structured histories take whichever side is non-empty,
// preferring the AI side. The raw text always comes from the local pass.
func Merge(local, ai types.ResumeRecord) types.ResumeRecord {
	merged := types.ResumeRecord{
		Name:          firstNonEmpty(ai.Name, local.Name),
		Email:         unionFold(ai.Email, local.Email),
		MobileNumber:  unionFold(ai.MobileNumber, local.MobileNumber),
		Skills:        unionFold(ai.Skills, local.Skills),
		Summary:       firstNonEmpty(ai.Summary, local.Summary),
		RawText:       local.RawText,
		ParsingSource: types.SourceHybrid,
	}

	merged.Experience = ai.Experience
	if len(merged.Experience) == 0 {
		merged.Experience = local.Experience
	}
	if merged.Experience == nil {
		merged.Experience = []types.ExperienceEntry{}
	}

	merged.Education = ai.Education
	if len(merged.Education) == 0 {
		merged.Education = local.Education
	}
	if merged.Education == nil {
		merged.Education = []types.EducationEntry{}
	}

	merged.Projects = ai.Projects
	if len(merged.Projects) == 0 {
		merged.Projects = local.Projects
	}
	if merged.Projects == nil {
		merged.Projects = []types.ProjectEntry{}
	}

	merged.Certifications = ai.Certifications
	if len(merged.Certifications) == 0 {
		merged.Certifications = local.Certifications
	}
	if merged.Certifications == nil {
		merged.Certifications = []string{}
	}

	merged.ConfidenceScore = (local.ConfidenceScore + ai.ConfidenceScore) / 2

	if len(ai.AdditionalSections) > 0 {
		merged.AdditionalSections = ai.AdditionalSections
	} else {
		merged.AdditionalSections = local.AdditionalSections
	}

	return merged
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

// unionFold merges the slices preserving first-seen order, comparing
// case-insensitively.
func unionFold(primary, secondary []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, list := range [][]string{primary, secondary} {
		for _, item := range list {
			key := strings.ToLower(strings.TrimSpace(item))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, item)
		}
	}
	return out
}
