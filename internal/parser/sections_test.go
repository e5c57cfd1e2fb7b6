package parser

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses space runs",
			input: "Jane    Doe\tSoftware   Engineer",
			want:  "Jane Doe Software Engineer",
		},
		{
			name:  "collapses blank lines",
			input: "Jane Doe\n\n\nEngineer",
			want:  "Jane Doe\nEngineer",
		},
		{
			name:  "normalizes CRLF",
			input: "Jane Doe\r\n\r\nEngineer",
			want:  "Jane Doe\nEngineer",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  \n Jane Doe \n ",
			want:  "Jane Doe",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \t \n \n ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.input)
			if got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	input := "Jane  Doe\r\n\r\nSenior   Engineer\n\n\nPython, Go"
	once := CleanText(input)
	twice := CleanText(once)
	if once != twice {
		t.Errorf("CleanText is not idempotent: first %q, second %q", once, twice)
	}
}

func TestSegment(t *testing.T) {
	text := CleanText(`Jane Doe
jane.doe@example.org

EXPERIENCE
Senior Engineer at Acme Corp (2020 - Present)
Led the platform team.

EDUCATION
Bachelor of Science in Computer Science, Stanford University, 2015

SKILLS
Python, Docker, Kubernetes`)

	sections := Segment(text)

	wantOrder := []SectionTag{SectionGeneral, SectionExperience, SectionEducation, SectionSkills}
	if len(sections.Order) != len(wantOrder) {
		t.Fatalf("Order = %v, want %v", sections.Order, wantOrder)
	}
	for i, tag := range wantOrder {
		if sections.Order[i] != tag {
			t.Errorf("Order[%d] = %q, want %q", i, sections.Order[i], tag)
		}
	}

	if got := sections.ByTag[SectionGeneral]; !strings.Contains(got, "Jane Doe") {
		t.Errorf("general section %q missing name line", got)
	}
	if got := sections.ByTag[SectionExperience]; !strings.Contains(got, "Acme Corp") {
		t.Errorf("experience section %q missing employer line", got)
	}
	if got := sections.ByTag[SectionSkills]; !strings.Contains(got, "Docker") {
		t.Errorf("skills section %q missing skill line", got)
	}
}

func TestSegmentReconstructsInput(t *testing.T) {
	text := CleanText(`Jane Doe
jane.doe@example.org

WORK EXPERIENCE
Senior Engineer at Acme Corp (2020 - Present)

EDUCATION
B.S. Computer Science - MIT (2015)

TECHNICAL SKILLS
Python, Docker, AWS`)

	sections := Segment(text)

	parts := make([]string, 0, len(sections.Order))
	for _, tag := range sections.Order {
		parts = append(parts, sections.ByTag[tag])
	}
	if got := strings.Join(parts, "\n"); got != text {
		t.Errorf("joined sections do not reproduce input:\ngot:\n%s\nwant:\n%s", got, text)
	}
}

func TestSegmentNoHeaders(t *testing.T) {
	text := "Jane Doe is an engineer who has worked on many systems over the years."

	sections := Segment(text)

	if len(sections.Order) != 1 || sections.Order[0] != SectionGeneral {
		t.Fatalf("Order = %v, want just general", sections.Order)
	}
	if sections.ByTag[SectionGeneral] != text {
		t.Errorf("general section = %q, want full input", sections.ByTag[SectionGeneral])
	}
}

func TestSectionsGetFallback(t *testing.T) {
	text := "Jane Doe\nEXPERIENCE\nEngineer at Acme Corp (2020 - 2023)"
	sections := Segment(text)

	if got := sections.Get(SectionSkills, text); got != text {
		t.Errorf("Get on absent tag = %q, want fallback text", got)
	}
	if got := sections.Get(SectionExperience, text); !strings.Contains(got, "Acme Corp") {
		t.Errorf("Get on present tag = %q, want experience block", got)
	}
}

func TestMatchHeader(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantTag SectionTag
		wantOK  bool
	}{
		{"uppercase header", "EXPERIENCE", SectionExperience, true},
		{"title case with colon", "Technical Skills:", SectionSkills, true},
		{"education synonym", "ACADEMIC BACKGROUND", SectionEducation, true},
		{"body sentence", "I gained experience working with customers over several years", "", false},
		{"too long", strings.Repeat("SKILLS ", 10), "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, ok := matchHeader(tt.line)
			if ok != tt.wantOK || tag != tt.wantTag {
				t.Errorf("matchHeader(%q) = (%q, %v), want (%q, %v)", tt.line, tag, ok, tt.wantTag, tt.wantOK)
			}
		})
	}
}
