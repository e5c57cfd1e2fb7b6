package errors

import (
	"fmt"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewIOError(ErrCodeFileNotFound, "File not found", nil)
	want := "FILE_NOT_FOUND: File not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	cause := fmt.Errorf("open /tmp/missing: no such file")
	err = NewIOError(ErrCodeFileNotFound, "File not found", cause)
	want = "FILE_NOT_FOUND: File not found (caused by: open /tmp/missing: no such file)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}

func TestHasCode(t *testing.T) {
	appErr := NewAIError(ErrCodeProviderDown, "circuit open", nil)

	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"direct match", appErr, ErrCodeProviderDown, true},
		{"direct mismatch", appErr, ErrCodeAITimeout, false},
		{"wrapped once", fmt.Errorf("scoring failed: %w", appErr), ErrCodeProviderDown, true},
		{"wrapped twice", fmt.Errorf("request: %w", fmt.Errorf("scoring failed: %w", appErr)), ErrCodeProviderDown, true},
		{"plain error", fmt.Errorf("boom"), ErrCodeProviderDown, false},
		{"nil error", nil, ErrCodeProviderDown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(tt.err, tt.code); got != tt.want {
				t.Errorf("HasCode(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	err := NewValidationError(ErrCodeInvalidRequest, "bad input", nil).
		WithContext("field", "resumeText")
	if err.Context["field"] != "resumeText" {
		t.Errorf("expected context field to be set, got %v", err.Context)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("verbose"); err == nil {
		t.Error("expected error for unknown log level")
	}
	if logger, err := New("info"); err != nil || logger == nil {
		t.Errorf("expected logger for info level, got %v", err)
	}
}
