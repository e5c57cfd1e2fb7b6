package parser

import (
	"regexp"
	"strings"

	"parsume/internal/types"
)

const (
	maxCertEntries    = 10
	minCertLen        = 3
	maxCertLen        = 100
	maxProjectEntries = 5
	minProjectLen     = 10
	maxProjectLen     = 100
	maxSummaryLen     = 300
	minSummaryLine    = 50
	projectDescWindow = 300
	projectDescLines  = 3
)

var certificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)certified\s+([^\n,;]+)`),
	regexp.MustCompile(`(?i)certification[:\s]+([^\n,;]+)`),
	regexp.MustCompile(`(?im)^([A-Z][^\n]*?(?:certified|certification|certificate)[^\n]*)$`),
	regexp.MustCompile(`(?im)^[-•]\s*([A-Z][^\n]*?(?:AWS|Azure|Google|Oracle|Cisco|CompTIA|PMP|CISSP)[^\n]*)$`),
}

// ExtractCertifications collects certification mentions, deduplicated
// case-insensitively and capped at ten.
func ExtractCertifications(text string) []string {
	certs := []string{}
	seen := make(map[string]bool)

	for _, pattern := range certificationPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			cert := strings.TrimSpace(match[1])
			if len(cert) <= minCertLen || len(cert) >= maxCertLen {
				continue
			}
			key := strings.ToLower(cert)
			if seen[key] {
				continue
			}
			seen[key] = true
			certs = append(certs, titleCase(cert))
			if len(certs) >= maxCertEntries {
				return certs
			}
		}
	}
	return certs
}

var projectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)project[:\s]+([^\n]+)`),
	regexp.MustCompile(`•\s*([A-Z][^\n•]+)`),
	regexp.MustCompile(`(?m)^-\s*([A-Z][^\n-]+)`),
}

// ExtractProjects pulls project names with a short description from the
// following lines. Capped at five entries.
func ExtractProjects(text string) []types.ProjectEntry {
	projects := []types.ProjectEntry{}
	seen := make(map[string]bool)

	for _, pattern := range projectPatterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			match := submatches(text, loc)
			name := strings.TrimSpace(match[1])
			if len(name) <= minProjectLen || len(name) >= maxProjectLen {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			projects = append(projects, types.ProjectEntry{
				Name:        name,
				Description: projectDescription(text, loc[1]),
			})
			if len(projects) >= maxProjectEntries {
				return projects
			}
		}
	}
	return projects
}

func projectDescription(text string, offset int) string {
	window := text[offset:]
	if len(window) > projectDescWindow {
		window = window[:projectDescWindow]
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
		kept = append(kept, line)
		if len(kept) >= projectDescLines {
			break
		}
	}
	return strings.Join(kept, " ")
}

// The summary runs until the next header-looking line: either an uppercase
// word with a colon or a fully uppercase line.
var summaryLabelPattern = regexp.MustCompile(`(?s)(?i:summary|objective|profile)[:\s]+(.*?)(?:\n[A-Z][A-Z\s]*:|\n[A-Z][A-Z\s]{2,}\n|\n[A-Z][A-Z\s]{2,}$|\z)`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExtractSummary returns the labeled summary paragraph, or as a fallback the
// first substantial line that does not look like contact information.
// Truncated to 300 characters.
func ExtractSummary(text string) string {
	if match := summaryLabelPattern.FindStringSubmatch(text); match != nil {
		summary := whitespaceRun.ReplaceAllString(strings.TrimSpace(match[1]), " ")
		return truncate(summary, maxSummaryLen)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= minSummaryLine {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(line, "@") || strings.Contains(lower, "phone") ||
			strings.Contains(lower, "email") || strings.Contains(lower, "address") {
			continue
		}
		if line == strings.ToUpper(line) {
			continue
		}
		return truncate(line, maxSummaryLen)
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
