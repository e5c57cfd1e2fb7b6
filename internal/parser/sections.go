package parser

import (
	"regexp"
	"strings"
)

// SectionTag labels a logical region of a resume.
type SectionTag string

const (
	SectionGeneral        SectionTag = "general"
	SectionPersonal       SectionTag = "personal"
	SectionExperience     SectionTag = "experience"
	SectionEducation      SectionTag = "education"
	SectionSkills         SectionTag = "skills"
	SectionProjects       SectionTag = "projects"
	SectionCertifications SectionTag = "certifications"
	SectionAchievements   SectionTag = "achievements"
	SectionLanguages      SectionTag = "languages"
)

// sectionHeaders maps each section tag to the header synonyms that announce
// it. Matching is substring-based on a lowercased, punctuation-stripped line.
var sectionHeaders = []struct {
	tag      SectionTag
	synonyms []string
}{
	{SectionPersonal, []string{"contact", "personal information", "profile", "summary", "objective"}},
	{SectionExperience, []string{"experience", "work experience", "employment", "professional experience",
		"career history", "work history", "employment history"}},
	{SectionEducation, []string{"education", "academic background", "qualifications", "academic",
		"educational background", "schooling"}},
	{SectionSkills, []string{"skills", "technical skills", "core competencies", "expertise",
		"technologies", "tools", "programming languages", "core skills"}},
	{SectionProjects, []string{"projects", "key projects", "notable projects", "personal projects"}},
	{SectionCertifications, []string{"certifications", "certificates", "licenses", "professional certifications"}},
	{SectionAchievements, []string{"achievements", "accomplishments", "awards", "honors", "recognition"}},
	{SectionLanguages, []string{"languages", "language skills", "linguistic skills"}},
}

// Sections is the transient output of segmentation. ByTag holds the joined
// text block per tag; Order records tags by first appearance so the original
// document can be reconstructed.
type Sections struct {
	ByTag map[SectionTag]string
	Order []SectionTag
}

// Get returns the text for tag, or fallback when the tag was never seen or
// is empty.
func (s *Sections) Get(tag SectionTag, fallback string) string {
	if s == nil {
		return fallback
	}
	if text, ok := s.ByTag[tag]; ok && strings.TrimSpace(text) != "" {
		return text
	}
	return fallback
}

var nonWordOrSpace = regexp.MustCompile(`[^\w\s]`)

// maxHeaderLen is the longest line that can still qualify as a section
// header. Real headers are short.
const maxHeaderLen = 50

// Segment partitions resume text into labeled sections by scanning for
// header lines. Lines before the first header, and the whole document when
// no header is ever found, land in the general section. Header lines are
// kept at the top of the section they open, so joining all sections in
// order reproduces the input.
func Segment(text string) *Sections {
	sections := &Sections{ByTag: make(map[SectionTag]string)}

	current := SectionGeneral
	var buf []string

	flush := func() {
		if len(buf) == 0 {
			return
		}
		block := strings.Join(buf, "\n")
		if existing, ok := sections.ByTag[current]; ok {
			sections.ByTag[current] = existing + "\n" + block
		} else {
			sections.ByTag[current] = block
			sections.Order = append(sections.Order, current)
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if tag, ok := matchHeader(line); ok {
			flush()
			current = tag
		}
		buf = append(buf, line)
	}
	flush()

	return sections
}

// matchHeader reports whether line announces a new section, and which one.
// A line qualifies only if a header synonym occurs in its normalized form,
// it is short, and it visually resembles a heading: fully uppercase,
// title-case, or carrying a delimiter character.
func matchHeader(line string) (SectionTag, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) >= maxHeaderLen {
		return "", false
	}

	normalized := strings.TrimSpace(nonWordOrSpace.ReplaceAllString(strings.ToLower(trimmed), ""))
	if normalized == "" {
		return "", false
	}

	if !looksLikeHeading(trimmed) {
		return "", false
	}

	for _, entry := range sectionHeaders {
		for _, synonym := range entry.synonyms {
			if strings.Contains(normalized, synonym) {
				return entry.tag, true
			}
		}
	}
	return "", false
}

func looksLikeHeading(line string) bool {
	if strings.ContainsAny(line, ":-—•") {
		return true
	}
	return isUpper(line) || isTitleCase(line)
}

// isUpper reports whether the line has at least one letter and no lowercase
// letters.
func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if (r >= 'A' && r <= 'Z') || r > 127 {
			hasLetter = true
		}
	}
	return hasLetter
}

// isTitleCase reports whether every word starts with an uppercase letter.
func isTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		first := rune(w[0])
		if first >= 'a' && first <= 'z' {
			return false
		}
	}
	return true
}
