package parser

import (
	"regexp"
	"strings"

	"parsume/internal/types"
)

const maxEducationEntries = 5

var degreePatterns = []*regexp.Regexp{
	// Bachelor of Science in Computer Science, Stanford University, 2019
	regexp.MustCompile(`(?im)^((?:bachelor|master|doctor|ph\.?d|associate)[^\n,]*?)(?:\s+in\s+([^\n,]+?))?,\s*([^\n,]+?)(?:,\s*((?:19|20)\d{2}))?$`),
	// B.S. Computer Science - MIT (2018)
	regexp.MustCompile(`(?im)^([bm]\.?[sa]\.?|mba|b\.?tech|m\.?tech|[bm]\.?e\.?)\s+([^\n(-]+?)\s*[-–]\s*([^\n(]+?)\s*\(((?:19|20)\d{2})\)`),
}

var degreeKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "diploma", "certificate",
	"b.s", "b.a", "m.s", "m.a", "mba", "b.tech", "m.tech", "b.e", "m.e",
}

var institutionKeywords = []string{
	"university", "college", "institute", "school", "academy",
}

var yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// ExtractEducation pulls degree entries out of the education section text.
// Structured patterns run first; a line-scan second pass catches entries the
// patterns miss. Entries are deduplicated by degree and capped at five.
func ExtractEducation(text string) []types.EducationEntry {
	entries := []types.EducationEntry{}
	seen := make(map[string]bool)

	add := func(entry types.EducationEntry) bool {
		entry.Degree = strings.TrimSpace(entry.Degree)
		if entry.Degree == "" {
			return false
		}
		key := strings.ToLower(entry.Degree)
		if seen[key] {
			return false
		}
		seen[key] = true
		entry.Type = classifyDegree(entry.Degree)
		entries = append(entries, entry)
		return len(entries) >= maxEducationEntries
	}

	for _, pattern := range degreePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			degree := strings.TrimSpace(match[1])
			field := strings.TrimSpace(match[2])
			institution := strings.TrimSpace(match[3])
			year := strings.TrimSpace(match[4])
			if add(types.EducationEntry{
				Degree:       degree,
				Institution:  institution,
				FieldOfStudy: field,
				Year:         year,
			}) {
				return entries
			}
		}
	}

	// Looser pass: any line with a degree keyword that the structured
	// patterns did not already consume; institution and year come from the
	// same line when present.
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !containsAnyWord(trimmed, degreeKeywords) {
			continue
		}
		if matchedByPattern(trimmed) {
			continue
		}
		entry := types.EducationEntry{Degree: trimmed}
		if year := yearPattern.FindString(trimmed); year != "" {
			entry.Year = year
		}
		for _, part := range strings.Split(trimmed, ",") {
			if containsAnyWord(part, institutionKeywords) {
				entry.Institution = strings.TrimSpace(part)
				break
			}
		}
		if add(entry) {
			return entries
		}
	}
	return entries
}

func matchedByPattern(line string) bool {
	for _, pattern := range degreePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

func containsAnyWord(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, word := range words {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func classifyDegree(degree string) types.EducationLevel {
	lower := strings.ToLower(degree)
	switch {
	case strings.Contains(lower, "phd"), strings.Contains(lower, "ph.d"),
		strings.Contains(lower, "doctor"):
		return types.LevelDoctorate
	case strings.Contains(lower, "master"), strings.Contains(lower, "mba"),
		strings.HasPrefix(lower, "m.s"), strings.HasPrefix(lower, "m.a"),
		strings.HasPrefix(lower, "m.tech"), strings.HasPrefix(lower, "m.e"):
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
