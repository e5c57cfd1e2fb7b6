package formatters

import (
	"strings"
	"testing"

	"parsume/internal/types"
)

func TestGenerateLatexResume(t *testing.T) {
	out, err := GenerateLatexResume(sampleRecord(), TemplateProfessional)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		`\documentclass`,
		`\begin{document}`,
		`\end{document}`,
		"John Smith",
		"john@example.com",
		"4155552671",
		"Backend engineer.",
		`\subsection{Engineer at Initech \hfill 2019 - Present}`,
		`\textbf{Bachelor of Science}, State University (2016)`,
		"Go, Python",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[FULL_NAME]") || strings.Contains(out, "[WORK_EXPERIENCE]") {
		t.Error("output still carries unsubstituted placeholders")
	}
}

func TestGenerateLatexResumeAllTemplates(t *testing.T) {
	for _, name := range AvailableTemplates() {
		out, err := GenerateLatexResume(sampleRecord(), name)
		if err != nil {
			t.Errorf("template %s: unexpected error: %v", name, err)
			continue
		}
		validation := ValidateTemplate(out)
		if !validation["is_valid"] {
			t.Errorf("template %s: generated document failed structural checks: %v", name, validation)
		}
		if !strings.Contains(out, "John Smith") {
			t.Errorf("template %s: output missing name", name)
		}
	}
}

func TestGenerateLatexResumeUnknownTemplate(t *testing.T) {
	_, err := GenerateLatexResume(sampleRecord(), "baroque")
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
	if !strings.Contains(err.Error(), "baroque") {
		t.Errorf("error should name the template: %v", err)
	}
}

func TestGenerateLatexResumeEscapesSpecials(t *testing.T) {
	record := sampleRecord()
	record.Name = "John & Jane Smith"
	record.Summary = "Cut costs by 50% at R_D #1 {core} team"

	out, err := GenerateLatexResume(record, TemplateMinimal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{`John \& Jane Smith`, `50\%`, `R\_D`, `\#1`, `\{core\}`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing escaped form %q:\n%s", want, out)
		}
	}
}

func TestGenerateLatexResumeEmptySections(t *testing.T) {
	record := types.ResumeRecord{Name: "Jane Doe"}

	out, err := GenerateLatexResume(record, TemplateProfessional)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, `\subsection`) || strings.Contains(out, `\begin{itemize}`) {
		t.Error("empty record must not produce experience or list blocks")
	}
}

func TestAvailableTemplates(t *testing.T) {
	names := AvailableTemplates()
	if len(names) != 3 {
		t.Fatalf("got %d templates, want 3: %v", len(names), names)
	}
	for _, name := range names {
		info, ok := GetTemplateInfo(name)
		if !ok {
			t.Errorf("template %s has no metadata", name)
			continue
		}
		if info.Name == "" || info.Description == "" {
			t.Errorf("template %s metadata incomplete: %+v", name, info)
		}
	}
}

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"predefined", latexTemplates[TemplateProfessional], true},
		{"missing documentclass", `\begin{document}[FULL_NAME]\end{document}`, false},
		{"missing end", `\documentclass{article}\begin{document}`, false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validation := ValidateTemplate(tt.content)
			if validation["is_valid"] != tt.valid {
				t.Errorf("is_valid = %v, want %v (%v)", validation["is_valid"], tt.valid, validation)
			}
		})
	}
}

func TestRegistryRoutesLatex(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleRecord(), "latex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `\documentclass`) {
		t.Errorf("latex format should produce a LaTeX document:\n%s", out)
	}
}
