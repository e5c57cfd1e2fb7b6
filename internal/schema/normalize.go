// Package schema converts loosely structured parser output, typically a JSON
// document produced by an AI provider, into the canonical resume record. It
// also merges records obtained from different parsing paths.
package schema

import (
	"strconv"
	"strings"

	"parsume/internal/types"
)

// Field aliases observed across provider outputs. The first present key wins
// for scalar fields.
var (
	nameAliases    = []string{"name", "full_name", "full name", "candidate_name"}
	emailAliases   = []string{"email", "emails", "email_address", "e-mail"}
	phoneAliases   = []string{"mobile_number", "phone", "phone_number", "mobile", "telephone", "contact_number"}
	summaryAliases = []string{
		"summary", "professional_summary", "objective", "profile",
		"career_objective", "professional_profile", "overview",
		"about", "introduction", "bio",
	}
	skillsAliases = []string{
		"skills", "technical_skills", "core_competencies", "expertise",
		"proficiencies", "capabilities", "competencies",
	}
	experienceAliases = []string{
		"experience", "work_experience", "professional_experience",
		"employment_history", "career_history", "employment",
		"work_history", "professional_background", "job_history",
	}
	educationAliases = []string{
		"education", "academic_background", "educational_background",
		"academic_history", "schooling", "qualifications",
	}
	projectAliases = []string{
		"projects", "portfolio", "personal_projects", "side_projects",
		"notable_projects", "key_projects", "project_experience",
	}
	certificationAliases = []string{"certifications", "certificates", "licenses"}

	confidenceKey = "confidence_score"
	rawTextKey    = "raw_text"
)

// Item-level aliases.
var (
	companyAliases     = []string{"company", "employer", "organization", "firm"}
	titleAliases       = []string{"title", "position", "role", "job_title", "designation"}
	durationAliases    = []string{"duration", "dates", "period"}
	descAliases        = []string{"description", "responsibilities", "duties", "achievements", "summary"}
	institutionAliases = []string{"institution", "school", "university", "college"}
	degreeAliases      = []string{"degree", "qualification", "program"}
	fieldAliases       = []string{"field_of_study", "field", "major", "specialization", "subject"}
	yearAliases        = []string{"year", "graduation_year", "date"}
	projectNameAliases = []string{"name", "title", "project_name"}
	projectDescAliases = []string{"description", "summary", "details"}
)

// Normalize maps doc onto the canonical record, probing alias keys for each
// field. Keys that map to no canonical field are preserved under
// AdditionalSections. The record's source is always set to source.
func Normalize(doc map[string]any, source types.ParseSource) types.ResumeRecord {
	record := types.ResumeRecord{
		Email:          []string{},
		MobileNumber:   []string{},
		Skills:         []string{},
		Education:      []types.EducationEntry{},
		Experience:     []types.ExperienceEntry{},
		Projects:       []types.ProjectEntry{},
		Certifications: []string{},
		ParsingSource:  source,
	}
	consumed := make(map[string]bool)

	if value, key, ok := probe(doc, nameAliases); ok {
		record.Name = toString(value)
		consumed[key] = true
	}
	if value, key, ok := probe(doc, emailAliases); ok {
		record.Email = toStringSlice(value)
		consumed[key] = true
	}
	if value, key, ok := probe(doc, phoneAliases); ok {
		record.MobileNumber = toStringSlice(value)
		consumed[key] = true
	}
	if value, key, ok := probe(doc, summaryAliases); ok {
		record.Summary = strings.TrimSpace(toString(value))
		consumed[key] = true
	}
	if value, key, ok := probe(doc, skillsAliases); ok {
		record.Skills = flattenSkills(value)
		consumed[key] = true
	}
	if value, key, ok := probe(doc, experienceAliases); ok {
		record.Experience = toExperience(value)
		consumed[key] = true
	}
	if value, key, ok := probe(doc, educationAliases); ok {
		record.Education = toEducation(value)
		consumed[key] = true
	}
	if value, key, ok := probe(doc, projectAliases); ok {
		record.Projects = toProjects(value)
		consumed[key] = true
	}
	if value, key, ok := probe(doc, certificationAliases); ok {
		record.Certifications = toStringSlice(value)
		consumed[key] = true
	}
	if value, ok := doc[confidenceKey]; ok {
		record.ConfidenceScore = toFloat(value)
		consumed[confidenceKey] = true
	}
	if value, ok := doc[rawTextKey]; ok {
		record.RawText = toString(value)
		consumed[rawTextKey] = true
	}

	for key, value := range doc {
		if consumed[key] || strings.HasPrefix(key, "_") {
			continue
		}
		if record.AdditionalSections == nil {
			record.AdditionalSections = make(map[string]any)
		}
		record.AdditionalSections[key] = value
	}

	return record
}

// probe returns the value for the first alias present in doc.
func probe(doc map[string]any, aliases []string) (any, string, bool) {
	for _, alias := range aliases {
		if value, ok := doc[alias]; ok {
			return value, alias, true
		}
	}
	return nil, "", false
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			return toString(v[0])
		}
		return ""
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// toStringSlice wraps a bare string into a singleton slice and converts
// []any element-wise, dropping blanks.
func toStringSlice(value any) []string {
	out := []string{}
	switch v := value.(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	case []any:
		for _, item := range v {
			if s := strings.TrimSpace(toString(item)); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

// flattenSkills accepts a flat list or a category-keyed map of lists.
func flattenSkills(value any) []string {
	if byCategory, ok := value.(map[string]any); ok {
		out := []string{}
		seen := make(map[string]bool)
		for _, items := range byCategory {
			for _, skill := range toStringSlice(items) {
				key := strings.ToLower(skill)
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, skill)
			}
		}
		return out
	}
	return toStringSlice(value)
}

// items coerces a list of objects, or a single object, into a []map.
func items(value any) []map[string]any {
	switch v := value.(type) {
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	case map[string]any:
		return []map[string]any{v}
	default:
		return nil
	}
}

func itemString(item map[string]any, aliases []string) string {
	if value, _, ok := probe(item, aliases); ok {
		return strings.TrimSpace(toString(value))
	}
	return ""
}

func toExperience(value any) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}
	for _, item := range items(value) {
		entry := types.ExperienceEntry{
			Title:       itemString(item, titleAliases),
			Company:     itemString(item, companyAliases),
			Duration:    itemString(item, durationAliases),
			Description: itemString(item, descAliases),
		}
		if entry.Title != "" || entry.Company != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

func toEducation(value any) []types.EducationEntry {
	entries := []types.EducationEntry{}
	for _, item := range items(value) {
		entry := types.EducationEntry{
			Degree:       itemString(item, degreeAliases),
			Institution:  itemString(item, institutionAliases),
			FieldOfStudy: itemString(item, fieldAliases),
			Year:         itemString(item, yearAliases),
		}
		if entry.Degree == "" && entry.Institution == "" {
			continue
		}
		entry.Type = classify(entry.Degree)
		entries = append(entries, entry)
	}
	return entries
}

func classify(degree string) types.EducationLevel {
	lower := strings.ToLower(degree)
	switch {
	case strings.Contains(lower, "phd"), strings.Contains(lower, "ph.d"),
		strings.Contains(lower, "doctor"):
		return types.LevelDoctorate
	case strings.Contains(lower, "master"), strings.Contains(lower, "mba"),
		strings.HasPrefix(lower, "m.s"), strings.HasPrefix(lower, "m.a"):
		return types.LevelMasters
	case strings.Contains(lower, "bachelor"),
		strings.HasPrefix(lower, "b.s"), strings.HasPrefix(lower, "b.a"),
		strings.HasPrefix(lower, "b.tech"), strings.HasPrefix(lower, "b.e"):
		return types.LevelBachelors
	case strings.Contains(lower, "diploma"), strings.Contains(lower, "certificate"):
		return types.LevelDiploma
	default:
		return types.LevelOther
	}
}

func toProjects(value any) []types.ProjectEntry {
	entries := []types.ProjectEntry{}
	for _, item := range items(value) {
		entry := types.ProjectEntry{
			Name:        itemString(item, projectNameAliases),
			Description: itemString(item, projectDescAliases),
		}
		if entry.Name != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}
