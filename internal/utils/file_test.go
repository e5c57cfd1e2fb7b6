package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"resume.PDF", ".pdf"},
		{"resume.docx", ".docx"},
		{"notes.txt", ".txt"},
		{"noextension", ""},
		{"archive.tar.gz", ".gz"},
	}

	for _, tt := range tests {
		if got := GetFileExtension(tt.filename); got != tt.want {
			t.Errorf("GetFileExtension(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestIsTextFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"resume.txt", true},
		{"README.md", true},
		{"resume.MARKDOWN", true},
		{"resume.pdf", false},
		{"resume.docx", false},
		{"resume", false},
	}

	for _, tt := range tests {
		if got := IsTextFile(tt.filename); got != tt.want {
			t.Errorf("IsTextFile(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.size); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte("content"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := ValidateInputFile(path); err != nil {
		t.Errorf("ValidateInputFile() error = %v for an existing file", err)
	}
	if err := ValidateInputFile(""); err == nil {
		t.Error("expected error for empty filename")
	}
	if err := ValidateInputFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
	if err := ValidateInputFile(dir); err == nil {
		t.Error("expected error for a directory path")
	}
}

func TestValidateFileSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 100)), 0600); err != nil {
		t.Fatal(err)
	}

	if err := ValidateFileSize(path, 200); err != nil {
		t.Errorf("ValidateFileSize() error = %v for file under limit", err)
	}
	if err := ValidateFileSize(path, 0); err != nil {
		t.Errorf("ValidateFileSize() error = %v with the check disabled", err)
	}
	if err := ValidateFileSize(path, 50); err == nil {
		t.Error("expected error for file over limit")
	}
}

func TestValidateOutputFile(t *testing.T) {
	if err := ValidateOutputFile(""); err != nil {
		t.Errorf("ValidateOutputFile(\"\") error = %v, stdout should be valid", err)
	}

	dir := t.TempDir()
	nested := filepath.Join(dir, "reports", "out.json")
	if err := ValidateOutputFile(nested); err != nil {
		t.Errorf("ValidateOutputFile() error = %v, should create missing directories", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "reports")); err != nil {
		t.Errorf("expected reports directory to exist: %v", err)
	}
}
