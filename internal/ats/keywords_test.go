package ats

import (
	"strings"
	"testing"

	"parsume/internal/types"
)

func TestExtractJobKeywords(t *testing.T) {
	jd := "We need a Python developer with Docker and Kubernetes experience. Familiarity with PostgreSQL required."

	keywords := ExtractJobKeywords(jd)

	for _, want := range []string{"python", "docker", "kubernetes", "postgresql"} {
		if !containsKeywordFold(keywords, want) {
			t.Errorf("keywords %v missing %q", keywords, want)
		}
	}

	seen := make(map[string]bool)
	for _, k := range keywords {
		key := strings.ToLower(k)
		if seen[key] {
			t.Errorf("duplicate keyword %q in %v", k, keywords)
		}
		seen[key] = true
	}
}

func TestExtractJobKeywordsEmpty(t *testing.T) {
	keywords := ExtractJobKeywords("")
	if keywords == nil {
		t.Fatal("got nil, want empty slice")
	}
	if len(keywords) != 0 {
		t.Errorf("got %v, want empty", keywords)
	}
}

func TestExtractJobKeywordsSkipsStopwords(t *testing.T) {
	keywords := ExtractJobKeywords("The And For With This That")
	if len(keywords) != 0 {
		t.Errorf("got %v, want stopwords filtered out", keywords)
	}
}

func TestMatchKeywords(t *testing.T) {
	record := types.ResumeRecord{
		Skills: []string{"Python", "Docker"},
	}

	match := MatchKeywords(record, "python and docker and terraform")

	if match.TotalKeywords != 3 {
		t.Fatalf("TotalKeywords = %d, want 3: %+v", match.TotalKeywords, match)
	}
	if len(match.Matching) != 2 {
		t.Errorf("Matching = %v, want python and docker", match.Matching)
	}
	if len(match.Missing) != 1 || match.Missing[0] != "terraform" {
		t.Errorf("Missing = %v, want [terraform]", match.Missing)
	}
	if match.MatchPercentage != 66.7 {
		t.Errorf("MatchPercentage = %v, want 66.7", match.MatchPercentage)
	}
}

func TestMatchKeywordsNoJobKeywords(t *testing.T) {
	match := MatchKeywords(types.ResumeRecord{}, "an entirely vague description")

	if match.MatchPercentage != 0 {
		t.Errorf("MatchPercentage = %v, want 0", match.MatchPercentage)
	}
	if match.TotalKeywords != 0 {
		t.Errorf("TotalKeywords = %d, want 0", match.TotalKeywords)
	}
}

func containsKeywordFold(keywords []string, want string) bool {
	for _, k := range keywords {
		if strings.EqualFold(k, want) {
			return true
		}
	}
	return false
}
