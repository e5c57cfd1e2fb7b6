package parser

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`(?i)[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// ExtractEmails returns all plausible email addresses in text, lowercased
// and deduplicated. No match yields an empty, non-nil slice.
func ExtractEmails(text string) []string {
	seen := make(map[string]struct{})
	emails := []string{}

	for _, match := range emailPattern.FindAllString(text, -1) {
		email := strings.ToLower(match)
		if !validEmail(email) {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}
	return emails
}

func validEmail(email string) bool {
	if len(email) <= 5 {
		return false
	}
	at := strings.LastIndex(email, "@")
	if at < 0 || !strings.Contains(email[at:], ".") {
		return false
	}
	return !strings.HasPrefix(email, ".") && !strings.HasSuffix(email, ".")
}

// phonePatterns are tried independently; candidates are normalized to
// digits (plus a leading +) and kept when the digit count is plausible.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+?1?[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`), // US format
	regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}`), // international
	regexp.MustCompile(`\b\d{10}\b`),
	regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`\d{3}[-.\s]\d{3}[-.\s]\d{4}`),
}

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// ExtractPhones returns normalized phone number candidates found in text.
func ExtractPhones(text string) []string {
	seen := make(map[string]struct{})
	phones := []string{}

	for _, pattern := range phonePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			phone := nonPhoneChars.ReplaceAllString(match, "")
			digits := len(strings.TrimPrefix(phone, "+"))
			if digits < minPhoneDigits || digits > maxPhoneDigits {
				continue
			}
			if _, dup := seen[phone]; dup {
				continue
			}
			seen[phone] = struct{}{}
			phones = append(phones, phone)
		}
	}
	return phones
}

// NameValidator confirms whether a candidate line names a person. A
// named-entity model can be plugged in here; when nil the capitalization
// heuristic decides alone.
type NameValidator interface {
	IsPersonName(line string) bool
}

var nameLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)name[:\s]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	regexp.MustCompile(`(?i)candidate[:\s]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
}

// nameScanLines bounds the top-of-document scan; names appear near the top.
const nameScanLines = 5

// ExtractName finds the candidate's name, scanning the first few lines for
// a 2-4 word alphabetic line and falling back to an explicit Name:/
// Candidate: label. Returns "" when nothing qualifies.
func ExtractName(text string, validator NameValidator) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || skipForName(line) {
			continue
		}

		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		ok := true
		for _, word := range words {
			bare := strings.NewReplacer(".", "", ",", "").Replace(word)
			if len(bare) <= 1 || !isAlphabetic(bare) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		if validator != nil && validator.IsPersonName(line) {
			return line
		}
		if anyCapitalized(words) {
			return line
		}
	}

	for _, pattern := range nameLabelPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// skipForName filters lines that cannot be a name: contact markers, heavy
// digit content, or heavy punctuation.
func skipForName(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range []string{"@", "http", "www", "phone", "email", "tel:"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	digits, punct := 0, 0
	for _, r := range line {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune(`!"#$%&'()*+,-./:;<=>?@[\]^_`+"`"+`{|}~`, r):
			punct++
		}
	}
	limit := len(line) * 3 / 10
	return digits > limit || punct > limit
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return s != ""
}

func anyCapitalized(words []string) bool {
	for _, w := range words {
		if w[0] >= 'A' && w[0] <= 'Z' {
			return true
		}
	}
	return false
}
