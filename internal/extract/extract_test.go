package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"parsume/internal/errors"
)

func TestSupportedExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{".txt", true},
		{".md", true},
		{".pdf", true},
		{".docx", true},
		{".PDF", true},
		{".exe", false},
		{".png", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := SupportedExtension(tt.ext); got != tt.want {
			t.Errorf("SupportedExtension(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestFromFileText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	content := "Jane Doe\njane.doe@example.org\n" + strings.Repeat("Relevant resume content. ", 5)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	text, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if text != content {
		t.Errorf("text = %q, want file content", text)
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.HasCode(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestFromFileUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.exe")
	if err := os.WriteFile(path, []byte("binary"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := FromFile(path)
	if !errors.HasCode(err, errors.ErrCodeUnsupportedFile) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeUnsupportedFile)
	}
}

func TestFromFileTooShort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stub.txt")
	if err := os.WriteFile(path, []byte("too short"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := FromFile(path)
	if !errors.HasCode(err, errors.ErrCodeNoTextExtracted) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeNoTextExtracted)
	}
}
