package schema

import (
	"reflect"
	"strings"
	"testing"

	"parsume/internal/types"
)

func TestMerge(t *testing.T) {
	local := types.ResumeRecord{
		Name:            "Jane Doe",
		Email:           []string{"jane@example.org"},
		MobileNumber:    []string{"4155550199"},
		Skills:          []string{"Python", "SQL"},
		Experience:      []types.ExperienceEntry{{Title: "Engineer", Company: "Acme"}},
		RawText:         "local raw text",
		ConfidenceScore: 0.7,
		ParsingSource:   types.SourceLocal,
	}
	ai := types.ResumeRecord{
		Name:            "Jane M. Doe",
		Email:           []string{"JANE@example.org", "jdoe@work.io"},
		Skills:          []string{"sql", "Kubernetes"},
		Summary:         "Platform engineer.",
		Education:       []types.EducationEntry{{Degree: "B.S.", Institution: "MIT"}},
		ConfidenceScore: 0.9,
		ParsingSource:   types.SourceLLM,
	}

	merged := Merge(local, ai)

	if merged.Name != "Jane M. Doe" {
		t.Errorf("Name = %q, want the AI value", merged.Name)
	}
	if !reflect.DeepEqual(merged.Email, []string{"JANE@example.org", "jdoe@work.io"}) {
		t.Errorf("Email = %v, want case-insensitive union", merged.Email)
	}
	if !reflect.DeepEqual(merged.Skills, []string{"sql", "Kubernetes", "Python"}) {
		t.Errorf("Skills = %v, want union keeping first casing", merged.Skills)
	}
	if len(merged.Experience) != 1 || merged.Experience[0].Company != "Acme" {
		t.Errorf("Experience = %+v, want local fallback", merged.Experience)
	}
	if len(merged.Education) != 1 || merged.Education[0].Institution != "MIT" {
		t.Errorf("Education = %+v, want AI entries", merged.Education)
	}
	if merged.Summary != "Platform engineer." {
		t.Errorf("Summary = %q", merged.Summary)
	}
	if merged.RawText != "local raw text" {
		t.Errorf("RawText = %q, want local text", merged.RawText)
	}
	if merged.ConfidenceScore != 0.8 {
		t.Errorf("ConfidenceScore = %v, want mean of 0.7 and 0.9", merged.ConfidenceScore)
	}
	if merged.ParsingSource != types.SourceHybrid {
		t.Errorf("ParsingSource = %q, want hybrid", merged.ParsingSource)
	}
}

func TestMergeSkillUnion(t *testing.T) {
	local := types.ResumeRecord{Skills: []string{"python", "sql"}}
	ai := types.ResumeRecord{Skills: []string{"Python"}}

	merged := Merge(local, ai)

	if len(merged.Skills) != 2 {
		t.Fatalf("Skills = %v, want exactly python and sql", merged.Skills)
	}
	want := map[string]bool{"python": true, "sql": true}
	for _, s := range merged.Skills {
		if !want[strings.ToLower(s)] {
			t.Errorf("unexpected skill %q", s)
		}
	}
}

func TestMergeEmptySides(t *testing.T) {
	merged := Merge(types.ResumeRecord{}, types.ResumeRecord{})

	if merged.Email == nil || merged.Skills == nil || merged.Experience == nil ||
		merged.Education == nil || merged.Projects == nil || merged.Certifications == nil {
		t.Errorf("collections must be non-nil: %+v", merged)
	}
	if merged.ParsingSource != types.SourceHybrid {
		t.Errorf("ParsingSource = %q, want hybrid", merged.ParsingSource)
	}
}
