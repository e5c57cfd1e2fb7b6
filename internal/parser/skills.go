package parser

import (
	"regexp"
	"sort"
	"strings"
)

const (
	minSkillLen = 2
	maxSkillLen = 30
)

// skillMiningPatterns pull skills out of free-form sentences such as
// "proficient in Python and Go" or "Technologies: React, Node.js".
var skillMiningPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:proficient|experienced|skilled)\s+(?:in|with)\s+([^,.;\n]+)`),
	regexp.MustCompile(`(?i)(?:knowledge|experience)\s+(?:of|in|with)\s+([^,.;\n]+)`),
	regexp.MustCompile(`(?i)technologies?[:\s]+([^.\n]+)`),
	regexp.MustCompile(`(?i)tools?[:\s]+([^.\n]+)`),
}

var skillListSplitter = regexp.MustCompile(`[,;|&]`)

// skillMatcher holds the compiled word-boundary patterns for one taxonomy.
// Compiling once per parser keeps Parse calls cheap.
type skillMatcher struct {
	patterns map[string]*regexp.Regexp
}

func newSkillMatcher(taxonomy Taxonomy) *skillMatcher {
	matcher := &skillMatcher{patterns: make(map[string]*regexp.Regexp)}
	for _, keywords := range taxonomy {
		for _, keyword := range keywords {
			if _, ok := matcher.patterns[keyword]; ok {
				continue
			}
			matcher.patterns[keyword] = compileSkillPattern(keyword)
		}
	}
	return matcher
}

// compileSkillPattern builds a case-insensitive word-boundary pattern where
// literal dots become optional, so "node.js" matches both "node.js" and
// "nodejs" in running text.
func compileSkillPattern(keyword string) *regexp.Regexp {
	escaped := regexp.QuoteMeta(keyword)
	escaped = strings.ReplaceAll(escaped, `\.`, `\.?`)
	return regexp.MustCompile(`(?i)\b` + escaped + `\b`)
}

// ExtractSkills matches the taxonomy against the text and mines additional
// skills from list-style phrases. Results are deduplicated case-insensitively,
// title-cased, and sorted.
func (m *skillMatcher) ExtractSkills(text string) []string {
	seen := make(map[string]string)

	for keyword, pattern := range m.patterns {
		if pattern.MatchString(text) {
			key := strings.ToLower(keyword)
			if _, ok := seen[key]; !ok {
				seen[key] = titleCase(keyword)
			}
		}
	}

	for _, pattern := range skillMiningPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			for _, candidate := range skillListSplitter.Split(match[1], -1) {
				candidate = strings.TrimSpace(candidate)
				if len(candidate) <= minSkillLen || len(candidate) >= maxSkillLen {
					continue
				}
				key := strings.ToLower(candidate)
				if _, ok := seen[key]; !ok {
					seen[key] = titleCase(candidate)
				}
			}
		}
	}

	skills := make([]string, 0, len(seen))
	for _, skill := range seen {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

// titleCase uppercases the first letter of each space-separated word without
// touching the rest, so acronyms like AWS and mixed names like iOS survive.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 && runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] = runes[0] - 'a' + 'A'
			words[i] = string(runes)
		}
	}
	return strings.Join(words, " ")
}
