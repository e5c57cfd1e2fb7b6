package parser

import (
	"strings"
	"testing"

	"parsume/internal/errors"
	"parsume/internal/types"
)

const sampleResume = `Jane Doe
jane.doe@example.org
(415) 555-0199

SUMMARY
Seasoned software engineer with ten years of experience building distributed systems.

WORK EXPERIENCE
Senior Software Engineer at Acme Corp (Jan 2020 - Present)
Led the migration of billing systems to event-driven services.

EDUCATION
Bachelor of Science in Computer Science, Stanford University, 2015

TECHNICAL SKILLS
Python, Docker, Kubernetes, PostgreSQL

CERTIFICATIONS
Certification: Solutions Architect Associate`

func TestParse(t *testing.T) {
	p := New(Config{})

	record, err := p.Parse(sampleResume)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if record.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", record.Name, "Jane Doe")
	}
	if len(record.Email) != 1 || record.Email[0] != "jane.doe@example.org" {
		t.Errorf("Email = %v, want [jane.doe@example.org]", record.Email)
	}
	if len(record.MobileNumber) != 1 || record.MobileNumber[0] != "4155550199" {
		t.Errorf("MobileNumber = %v, want [4155550199]", record.MobileNumber)
	}
	for _, want := range []string{"python", "docker", "kubernetes", "postgresql"} {
		if !containsFold(record.Skills, want) {
			t.Errorf("Skills %v missing %q", record.Skills, want)
		}
	}
	if len(record.Experience) != 1 || record.Experience[0].Company != "Acme Corp" {
		t.Errorf("Experience = %+v, want one Acme Corp entry", record.Experience)
	}
	if len(record.Education) != 1 || record.Education[0].Institution != "Stanford University" {
		t.Errorf("Education = %+v, want one Stanford entry", record.Education)
	}
	if len(record.Certifications) == 0 {
		t.Error("Certifications empty, want at least one")
	}
	if !strings.Contains(record.Summary, "Seasoned software engineer") {
		t.Errorf("Summary = %q, want summary paragraph", record.Summary)
	}
	if record.ParsingSource != types.SourceLocal {
		t.Errorf("ParsingSource = %q, want %q", record.ParsingSource, types.SourceLocal)
	}
	if record.ConfidenceScore != 1.0 {
		t.Errorf("ConfidenceScore = %v, want 1.0 with all fields present", record.ConfidenceScore)
	}
	if record.RawText == "" {
		t.Error("RawText empty, want cleaned preview")
	}
}

func TestParseNonNilCollections(t *testing.T) {
	p := New(Config{})

	record, err := p.Parse("A short note that is not a resume at all.")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if record.Email == nil || record.MobileNumber == nil || record.Skills == nil ||
		record.Experience == nil || record.Education == nil ||
		record.Projects == nil || record.Certifications == nil {
		t.Errorf("collections must be non-nil even when empty: %+v", record)
	}
}

func TestParseSummaryConfinedToProfile(t *testing.T) {
	p := New(Config{})

	text := `Jane Doe
jane.doe@example.org

WORK EXPERIENCE
Senior Software Engineer at Acme Corp (Jan 2020 - Present)
Led the migration of billing systems to event-driven services.`

	record, err := p.Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if record.Summary != "" {
		t.Errorf("Summary = %q, want empty when no profile or summary section exists", record.Summary)
	}
}

func TestParseEmptyText(t *testing.T) {
	p := New(Config{})

	for _, input := range []string{"", "   \n\t \n"} {
		_, err := p.Parse(input)
		if err == nil {
			t.Fatalf("Parse(%q) succeeded, want error", input)
		}
		if !errors.HasCode(err, errors.ErrCodeNoTextExtracted) {
			t.Errorf("Parse(%q) error = %v, want code %s", input, err, errors.ErrCodeNoTextExtracted)
		}
	}
}

func TestParseIdempotentOnCleanedText(t *testing.T) {
	p := New(Config{})

	first, err := p.Parse(sampleResume)
	if err != nil {
		t.Fatalf("first Parse failed: %v", err)
	}
	second, err := p.Parse(first.RawText)
	if err != nil {
		t.Fatalf("second Parse failed: %v", err)
	}

	if first.Name != second.Name || first.ConfidenceScore != second.ConfidenceScore {
		t.Errorf("reparse drifted: first (%q, %v), second (%q, %v)",
			first.Name, first.ConfidenceScore, second.Name, second.ConfidenceScore)
	}
}

func TestConfidenceWeights(t *testing.T) {
	tests := []struct {
		name   string
		record types.ResumeRecord
		want   float64
	}{
		{
			name:   "nothing found",
			record: types.ResumeRecord{},
			want:   0,
		},
		{
			name: "contact only",
			record: types.ResumeRecord{
				Name:         "Jane Doe",
				Email:        []string{"jane@example.org"},
				MobileNumber: []string{"4155550199"},
			},
			want: 0.6,
		},
		{
			name: "everything",
			record: types.ResumeRecord{
				Name:         "Jane Doe",
				Email:        []string{"jane@example.org"},
				MobileNumber: []string{"4155550199"},
				Skills:       []string{"Python"},
				Experience:   []types.ExperienceEntry{{Title: "Engineer"}},
				Education:    []types.EducationEntry{{Degree: "B.S."}},
			},
			want: 1.0,
		},
	}

	p := New(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.confidence(tt.record)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("confidence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfidenceClamped(t *testing.T) {
	p := New(Config{Weights: ConfidenceWeights{Email: 0.6, Phone: 0.6, Name: 0.6}})

	record := types.ResumeRecord{
		Name:         "Jane Doe",
		Email:        []string{"jane@example.org"},
		MobileNumber: []string{"4155550199"},
	}
	if got := p.confidence(record); got != 1.0 {
		t.Errorf("confidence = %v, want clamp to 1.0", got)
	}
}
