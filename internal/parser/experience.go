package parser

import (
	"regexp"
	"strings"

	"parsume/internal/types"
)

const (
	maxExperienceEntries = 10
	maxDescriptionLen    = 200
	descriptionWindow    = 500
	descriptionMaxLines  = 5
	minDescriptionLine   = 20
)

// experiencePatterns are tried in order; each captures title, company, and a
// date range that must contain a four-digit year.
var experiencePatterns = []*regexp.Regexp{
	// Software Engineer at Acme Corp (Jan 2020 - Present)
	regexp.MustCompile(`(?m)^([A-Z][^\n]*?)\s+(?:at|@)\s+([A-Z][^\n(]*?)\s*\(([^)]*(?:19|20)\d{2}[^)]*)\)`),
	// Acme Corp - Software Engineer (2020 - 2023)
	regexp.MustCompile(`(?m)^([A-Z][^\n-]*?)\s*[-–]\s*([A-Z][^\n(]*?)\s*\(([^)]*(?:19|20)\d{2}[^)]*)\)`),
	// Software Engineer\nAcme Corp (2020 - Present)
	regexp.MustCompile(`(?m)^([A-Z][^\n]*?)\n([A-Z][^\n(]*?)\s*\(([^)]*(?:19|20)\d{2}[^)]*)\)`),
}

// jobTitleWords disambiguate which captured group is the title when the
// pattern puts the company first.
var jobTitleWords = []string{
	"engineer", "developer", "manager", "analyst", "consultant",
	"specialist", "lead", "senior", "junior", "intern", "director",
}

var dateRangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{1,2}/\d{4})\s*[-–to]+\s*(\d{1,2}/\d{4}|present|current)`),
	regexp.MustCompile(`(?i)([A-Za-z]{3,9}\.?\s+\d{4})\s*[-–to]+\s*([A-Za-z]{3,9}\.?\s+\d{4}|present|current)`),
	regexp.MustCompile(`(?i)((?:19|20)\d{2})\s*[-–to]+\s*((?:19|20)\d{2}|present|current)`),
}

var sectionHeaderLine = regexp.MustCompile(`^[A-Z][^.]*$`)

// ExtractExperience pulls work history entries out of the experience section
// text. At most ten entries are returned, in document order. Text claimed by
// an earlier pattern is off limits to later ones, so the multiline pattern
// cannot re-match a heading and drag in the line above it.
func ExtractExperience(text string) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}
	seen := make(map[string]bool)
	var claimed [][2]int

	for _, pattern := range experiencePatterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			if overlapsClaimed(claimed, loc[0], loc[1]) {
				continue
			}
			match := submatches(text, loc)
			title := strings.TrimSpace(match[1])
			company := strings.TrimSpace(match[2])
			dates := strings.TrimSpace(match[3])

			if !looksLikeTitle(title) && looksLikeTitle(company) {
				title, company = company, title
			}
			if title == "" || company == "" {
				continue
			}
			if looksLikeHeader(title) || looksLikeHeader(company) {
				continue
			}
			claimed = append(claimed, [2]int{loc[0], loc[1]})

			key := strings.ToLower(title) + "|" + strings.ToLower(company)
			if seen[key] {
				continue
			}
			seen[key] = true

			entries = append(entries, types.ExperienceEntry{
				Title:       title,
				Company:     company,
				Duration:    formatDuration(dates),
				Description: extractDescription(text, loc[1]),
			})
			if len(entries) >= maxExperienceEntries {
				return entries
			}
		}
	}
	return entries
}

func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			continue
		}
		groups[i] = text[start:end]
	}
	return groups
}

func overlapsClaimed(claimed [][2]int, start, end int) bool {
	for _, span := range claimed {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}

// looksLikeHeader rejects long all-caps candidates such as section headings.
// Short acronym companies like IBM are kept.
func looksLikeHeader(s string) bool {
	return len(s) > 4 && s == strings.ToUpper(s)
}

func looksLikeTitle(s string) bool {
	lower := strings.ToLower(s)
	for _, word := range jobTitleWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// formatDuration normalizes a captured date range to "start - end"; if no
// recognized range is found the raw capture is returned trimmed.
func formatDuration(dates string) string {
	for _, pattern := range dateRangePatterns {
		if match := pattern.FindStringSubmatch(dates); match != nil {
			return strings.TrimSpace(match[1]) + " - " + strings.TrimSpace(match[2])
		}
	}
	return strings.TrimSpace(dates)
}

// extractDescription collects up to five substantial lines following the
// matched heading, stopping at the first blank break after content or at
// anything that reads like the next heading.
func extractDescription(text string, offset int) string {
	window := text[offset:]
	if len(window) > descriptionWindow {
		window = window[:descriptionWindow]
	}

	var kept []string
	for _, line := range strings.Split(window, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(kept) > 0 {
				break
			}
			continue
		}
		if sectionHeaderLine.MatchString(line) && len(kept) > 0 {
			break
		}
		if len(line) > minDescriptionLine {
			kept = append(kept, line)
		}
		if len(kept) >= descriptionMaxLines {
			break
		}
	}

	description := strings.Join(kept, " ")
	if len(description) > maxDescriptionLen {
		description = description[:maxDescriptionLen] + "..."
	}
	return description
}
