package parser

import (
	"regexp"
	"strings"
)

var (
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	newlineRuns = regexp.MustCompile(`\n{2,}`)
)

// CleanText collapses runs of spaces and tabs to a single space, runs of
// newlines to a single newline, and trims the result. It never fails; empty
// input yields an empty string.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
