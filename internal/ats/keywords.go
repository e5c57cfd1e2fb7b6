// Package ats scores resumes for applicant tracking system compatibility.
// The rule-based path needs no external services; an AI-backed path can
// produce the same report shape with richer commentary.
package ats

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"parsume/internal/types"
)

// jobKeywordList is the curated vocabulary scanned in job descriptions,
// covering languages, infrastructure, data tooling, and soft skills.
var jobKeywordList = []string{
	"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby", "go", "rust",
	"html", "css", "react", "angular", "vue", "node.js", "express", "django", "flask",
	"sql", "mysql", "postgresql", "mongodb", "redis", "sqlite",
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "terraform", "ansible",
	"machine learning", "data science", "tensorflow", "pytorch", "pandas", "numpy",
	"git", "jira", "confluence", "agile", "scrum", "ci/cd",
	"leadership", "communication", "teamwork", "problem solving", "analytical",
}

var capitalizedWord = regexp.MustCompile(`\b[A-Z][a-zA-Z]+\b`)

// capitalizedStopwords are sentence-position capitals, not technologies.
var capitalizedStopwords = map[string]bool{
	"The": true, "And": true, "For": true, "With": true, "This": true, "That": true,
}

const maxCapitalizedExtras = 10

// ExtractJobKeywords pulls the keyword vocabulary found in a job description
// plus up to ten capitalized terms that look like product or technology
// names. The result is deduplicated and keeps discovery order.
func ExtractJobKeywords(jobDescription string) []string {
	found := []string{}
	seen := make(map[string]bool)
	lower := strings.ToLower(jobDescription)

	for _, keyword := range jobKeywordList {
		if strings.Contains(lower, keyword) && !seen[keyword] {
			seen[keyword] = true
			found = append(found, keyword)
		}
	}

	extras := 0
	for _, word := range capitalizedWord.FindAllString(jobDescription, -1) {
		if extras >= maxCapitalizedExtras {
			break
		}
		if len(word) <= 3 || capitalizedStopwords[word] {
			continue
		}
		key := strings.ToLower(word)
		if seen[key] {
			continue
		}
		seen[key] = true
		found = append(found, word)
		extras++
	}

	return found
}

// MatchKeywords compares job-description keywords against the searchable
// text of a resume record.
func MatchKeywords(record types.ResumeRecord, jobDescription string) *types.KeywordMatchResult {
	jobKeywords := ExtractJobKeywords(jobDescription)
	haystack := strings.ToLower(searchableText(record))

	matching := []string{}
	missing := []string{}
	for _, keyword := range jobKeywords {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			matching = append(matching, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}

	percentage := 0.0
	if len(jobKeywords) > 0 {
		percentage = float64(len(matching)) / float64(len(jobKeywords)) * 100
	}

	return &types.KeywordMatchResult{
		JobKeywords:     jobKeywords,
		Matching:        matching,
		Missing:         missing,
		MatchPercentage: round1(percentage),
		TotalKeywords:   len(jobKeywords),
	}
}

// searchableText flattens the structured fields a recruiter-facing keyword
// scan should see: summary, skills, experience, and education.
func searchableText(record types.ResumeRecord) string {
	var b strings.Builder
	b.WriteString(record.Summary)
	b.WriteString(" ")
	b.WriteString(strings.Join(record.Skills, " "))
	for _, exp := range record.Experience {
		fmt.Fprintf(&b, " %s %s %s", exp.Title, exp.Company, exp.Description)
	}
	for _, edu := range record.Education {
		fmt.Fprintf(&b, " %s %s %s", edu.Degree, edu.Institution, edu.FieldOfStudy)
	}
	b.WriteString(" ")
	b.WriteString(record.RawText)
	return b.String()
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
