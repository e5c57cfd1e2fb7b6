package parser

import (
	"strings"
	"testing"
)

func TestExtractExperience(t *testing.T) {
	text := `Senior Software Engineer at Acme Corp (Jan 2020 - Present)
Led the migration of billing systems to event-driven services.
Mentored four junior engineers on the platform team.

Software Developer at Initech (Mar 2017 - Dec 2019)
Maintained internal reporting tools used across the company.`

	entries := ExtractExperience(text)

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}

	first := entries[0]
	if first.Title != "Senior Software Engineer" {
		t.Errorf("Title = %q, want %q", first.Title, "Senior Software Engineer")
	}
	if first.Company != "Acme Corp" {
		t.Errorf("Company = %q, want %q", first.Company, "Acme Corp")
	}
	if first.Duration != "Jan 2020 - Present" {
		t.Errorf("Duration = %q, want %q", first.Duration, "Jan 2020 - Present")
	}
	if !strings.Contains(first.Description, "billing systems") {
		t.Errorf("Description = %q, want billing line included", first.Description)
	}

	second := entries[1]
	if second.Company != "Initech" {
		t.Errorf("Company = %q, want %q", second.Company, "Initech")
	}
	if second.Duration != "Mar 2017 - Dec 2019" {
		t.Errorf("Duration = %q, want %q", second.Duration, "Mar 2017 - Dec 2019")
	}
}

func TestExtractExperienceCompanyFirst(t *testing.T) {
	text := "Acme Corp - Senior Developer (2019 - 2021)\nBuilt customer-facing dashboards for the sales organization."

	entries := ExtractExperience(text)

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(entries), entries)
	}
	if entries[0].Title != "Senior Developer" {
		t.Errorf("Title = %q, want %q (swapped from company position)", entries[0].Title, "Senior Developer")
	}
	if entries[0].Company != "Acme Corp" {
		t.Errorf("Company = %q, want %q", entries[0].Company, "Acme Corp")
	}
	if entries[0].Duration != "2019 - 2021" {
		t.Errorf("Duration = %q, want %q", entries[0].Duration, "2019 - 2021")
	}
}

func TestExtractExperienceRequiresYear(t *testing.T) {
	text := "Senior Engineer at Acme Corp (summer internship)\nWorked on the build system."

	if entries := ExtractExperience(text); len(entries) != 0 {
		t.Errorf("got %d entries for dateless heading, want 0: %+v", len(entries), entries)
	}
}

func TestExtractExperienceDedupes(t *testing.T) {
	text := `Senior Engineer at Acme Corp (2020 - 2022)
Senior Engineer at Acme Corp (2020 - 2022)`

	if entries := ExtractExperience(text); len(entries) != 1 {
		t.Errorf("got %d entries for duplicated heading, want 1: %+v", len(entries), entries)
	}
}

func TestExtractExperienceIgnoresSectionHeader(t *testing.T) {
	text := `WORK EXPERIENCE
Senior Software Engineer at Acme Corp (Jan 2020 - Present)
Led the migration of billing systems to event-driven services.`

	entries := ExtractExperience(text)

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(entries), entries)
	}
	if entries[0].Title != "Senior Software Engineer" {
		t.Errorf("Title = %q, want %q", entries[0].Title, "Senior Software Engineer")
	}
	if entries[0].Company != "Acme Corp" {
		t.Errorf("Company = %q, want %q", entries[0].Company, "Acme Corp")
	}
}

func TestExtractExperienceMultilineHeading(t *testing.T) {
	text := `Software Engineer
Acme Corp (2020 - Present)
Built customer-facing dashboards for the sales organization.`

	entries := ExtractExperience(text)

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(entries), entries)
	}
	if entries[0].Title != "Software Engineer" {
		t.Errorf("Title = %q, want %q", entries[0].Title, "Software Engineer")
	}
	if entries[0].Company != "Acme Corp" {
		t.Errorf("Company = %q, want %q", entries[0].Company, "Acme Corp")
	}
	if entries[0].Duration != "2020 - Present" {
		t.Errorf("Duration = %q, want %q", entries[0].Duration, "2020 - Present")
	}
}

func TestExtractExperienceEmpty(t *testing.T) {
	entries := ExtractExperience("A resume with no recognizable work history at all.")
	if entries == nil {
		t.Fatal("got nil, want empty slice")
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0: %+v", len(entries), entries)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Jan 2020 - Present", "Jan 2020 - Present"},
		{"01/2018 - 06/2021", "01/2018 - 06/2021"},
		{"2015 to 2019", "2015 - 2019"},
		{"since 2020", "since 2020"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.input); got != tt.want {
			t.Errorf("formatDuration(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
