package formatters

import (
	"fmt"
	"sort"
	"strings"

	"parsume/internal/types"
)

// Resume template names.
const (
	TemplateProfessional = "professional"
	TemplateAcademic     = "academic"
	TemplateMinimal      = "minimal"
)

// TemplateInfo describes a predefined resume template.
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BestFor     string `json:"bestFor"`
}

var latexTemplateInfo = map[string]TemplateInfo{
	TemplateProfessional: {
		Name:        "Professional",
		Description: "Clean, traditional format ideal for corporate environments",
		BestFor:     "Corporate jobs, traditional industries, senior positions",
	},
	TemplateAcademic: {
		Name:        "Academic",
		Description: "Format designed for academic and research positions",
		BestFor:     "Academic positions, research roles, PhD applications",
	},
	TemplateMinimal: {
		Name:        "Minimal",
		Description: "Simple, clean design with minimal styling",
		BestFor:     "Simple applications, quick resumes, basic positions",
	},
}

// latexTemplates hold placeholders like [FULL_NAME] that GenerateLatexResume
// substitutes with escaped record data.
var latexTemplates = map[string]string{
	TemplateProfessional: `\documentclass[letterpaper,11pt]{article}
\usepackage[left=0.75in,top=0.6in,right=0.75in,bottom=0.6in]{geometry}
\usepackage{titlesec}
\usepackage{enumitem}
\usepackage{hyperref}

\pagestyle{empty}
\setlength{\parindent}{0pt}

\titleformat{\section}
  {\large\bfseries\uppercase}
  {}
  {0pt}
  {}
  [\titlerule]

\titleformat{\subsection}
  {\bfseries}
  {}
  {0pt}
  {}

\begin{document}

\begin{center}
{\Large \textbf{[FULL_NAME]}}\\[0.2cm]
[PHONE] $\bullet$ [EMAIL]
\end{center}

\section{Professional Summary}
[PROFESSIONAL_SUMMARY]

\section{Professional Experience}
[WORK_EXPERIENCE]

\section{Education}
[EDUCATION]

\section{Technical Skills}
[SKILLS]

\section{Projects}
[PROJECTS]

\section{Certifications}
[CERTIFICATIONS]

\end{document}`,

	TemplateAcademic: `\documentclass[11pt]{article}
\usepackage[margin=1in]{geometry}
\usepackage{enumitem}
\usepackage{hyperref}
\usepackage{titlesec}

\pagestyle{empty}

\begin{document}

\begin{center}
{\LARGE \textbf{[FULL_NAME]}}\\[0.3cm]
[EMAIL] $\bullet$ [PHONE]
\end{center}

\section*{Research Interests}
[PROFESSIONAL_SUMMARY]

\section*{Education}
[EDUCATION]

\section*{Experience}
[WORK_EXPERIENCE]

\section*{Skills}
[SKILLS]

\section*{Projects}
[PROJECTS]

\end{document}`,

	TemplateMinimal: `\documentclass[11pt]{article}
\usepackage[margin=0.8in]{geometry}
\usepackage{enumitem}
\usepackage{hyperref}

\pagestyle{empty}
\setlength{\parindent}{0pt}

\begin{document}

\textbf{\Large [FULL_NAME]}\\
[PHONE] | [EMAIL]

\vspace{0.2cm}

\textbf{Professional Summary}\\
[PROFESSIONAL_SUMMARY]

\vspace{0.2cm}

\textbf{Experience}\\
[WORK_EXPERIENCE]

\vspace{0.2cm}

\textbf{Education}\\
[EDUCATION]

\vspace{0.2cm}

\textbf{Skills}\\
[SKILLS]

\end{document}`,
}

// AvailableTemplates returns the predefined template names, sorted.
func AvailableTemplates() []string {
	names := make([]string, 0, len(latexTemplates))
	for name := range latexTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetTemplateInfo returns metadata for a predefined template.
func GetTemplateInfo(name string) (TemplateInfo, bool) {
	info, ok := latexTemplateInfo[name]
	return info, ok
}

// ValidateTemplate reports structural checks for a custom LaTeX template.
func ValidateTemplate(content string) map[string]bool {
	validation := map[string]bool{
		"has_documentclass":  strings.Contains(content, `\documentclass`),
		"has_begin_document": strings.Contains(content, `\begin{document}`),
		"has_end_document":   strings.Contains(content, `\end{document}`),
		"has_placeholders":   false,
	}
	for _, placeholder := range []string{"[FULL_NAME]", "[EMAIL]", "[PHONE]", "[PROFESSIONAL_SUMMARY]"} {
		if strings.Contains(content, placeholder) {
			validation["has_placeholders"] = true
			break
		}
	}
	validation["is_valid"] = validation["has_documentclass"] &&
		validation["has_begin_document"] &&
		validation["has_end_document"]
	return validation
}

// latexEscaper rewrites LaTeX special characters in a single pass, so the
// backslashes it introduces are never re-escaped.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

func escapeLatex(s string) string {
	return latexEscaper.Replace(s)
}

// GenerateLatexResume renders a parsed record through a named template.
// Sections with no data are left blank rather than filled with placeholders.
func GenerateLatexResume(record types.ResumeRecord, templateName string) (string, error) {
	tmpl, ok := latexTemplates[templateName]
	if !ok {
		return "", fmt.Errorf("unknown resume template '%s' (available: %s)",
			templateName, strings.Join(AvailableTemplates(), ", "))
	}

	replacer := strings.NewReplacer(
		"[FULL_NAME]", escapeLatex(record.Name),
		"[EMAIL]", escapeLatex(strings.Join(record.Email, ", ")),
		"[PHONE]", escapeLatex(strings.Join(record.MobileNumber, ", ")),
		"[PROFESSIONAL_SUMMARY]", escapeLatex(record.Summary),
		"[WORK_EXPERIENCE]", latexExperience(record.Experience),
		"[EDUCATION]", latexEducation(record.Education),
		"[SKILLS]", escapeLatex(strings.Join(record.Skills, ", ")),
		"[PROJECTS]", latexProjects(record.Projects),
		"[CERTIFICATIONS]", latexItemize(record.Certifications),
	)
	return replacer.Replace(tmpl), nil
}

func latexExperience(entries []types.ExperienceEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var output strings.Builder
	for i, exp := range entries {
		if i > 0 {
			output.WriteString("\n")
		}
		output.WriteString(`\subsection{`)
		output.WriteString(escapeLatex(exp.Title))
		if exp.Company != "" {
			output.WriteString(" at ")
			output.WriteString(escapeLatex(exp.Company))
		}
		if exp.Duration != "" {
			output.WriteString(` \hfill `)
			output.WriteString(escapeLatex(exp.Duration))
		}
		output.WriteString("}\n")
		if exp.Description != "" {
			output.WriteString(escapeLatex(exp.Description))
			output.WriteString("\n")
		}
	}
	return strings.TrimRight(output.String(), "\n")
}

func latexEducation(entries []types.EducationEntry) string {
	if len(entries) == 0 {
		return ""
	}

	items := make([]string, 0, len(entries))
	for _, edu := range entries {
		var item strings.Builder
		item.WriteString(`\textbf{`)
		item.WriteString(escapeLatex(edu.Degree))
		item.WriteString("}")
		if edu.FieldOfStudy != "" {
			item.WriteString(" in ")
			item.WriteString(escapeLatex(edu.FieldOfStudy))
		}
		if edu.Institution != "" {
			item.WriteString(", ")
			item.WriteString(escapeLatex(edu.Institution))
		}
		if edu.Year != "" {
			item.WriteString(" (")
			item.WriteString(escapeLatex(edu.Year))
			item.WriteString(")")
		}
		items = append(items, item.String())
	}
	return latexItemize(items)
}

func latexProjects(entries []types.ProjectEntry) string {
	if len(entries) == 0 {
		return ""
	}

	items := make([]string, 0, len(entries))
	for _, proj := range entries {
		var item strings.Builder
		item.WriteString(`\textbf{`)
		item.WriteString(escapeLatex(proj.Name))
		item.WriteString("}")
		if proj.Description != "" {
			item.WriteString(": ")
			item.WriteString(escapeLatex(proj.Description))
		}
		items = append(items, item.String())
	}
	return latexItemize(items)
}

func latexItemize(items []string) string {
	if len(items) == 0 {
		return ""
	}

	var output strings.Builder
	output.WriteString("\\begin{itemize}[leftmargin=*]\n")
	for _, item := range items {
		output.WriteString(`\item `)
		output.WriteString(item)
		output.WriteString("\n")
	}
	output.WriteString(`\end{itemize}`)
	return output.String()
}

// ResumeLatexFormatter renders parsed resumes as compilable LaTeX documents
// through the predefined templates.
type ResumeLatexFormatter struct {
	Template string
}

func (rlf *ResumeLatexFormatter) Format(data any) (string, error) {
	record, ok := data.(types.ResumeRecord)
	if !ok {
		return "", fmt.Errorf("expected ResumeRecord, got %T", data)
	}

	templateName := rlf.Template
	if templateName == "" {
		templateName = TemplateProfessional
	}
	return GenerateLatexResume(record, templateName)
}

func (rlf *ResumeLatexFormatter) SupportedType() string {
	return "ResumeRecord"
}
