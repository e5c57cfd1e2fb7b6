// Package extract turns resume files into plain text ready for parsing.
// Plain-text formats are read directly; binary document formats go through
// the docconv converters.
package extract

import (
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"

	"parsume/internal/errors"
)

// minTextLen is the smallest extraction output treated as real content.
// Anything shorter is almost always a scan, an image-only PDF, or a
// conversion failure.
const minTextLen = 50

// directReadExtensions are read as-is off disk.
var directReadExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".csv": true,
}

// convertExtensions are routed through docconv.
var convertExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".rtf":  true,
	".odt":  true,
}

// SupportedExtension reports whether files with this extension can be
// handled. The extension check is case-insensitive.
func SupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	return directReadExtensions[ext] || convertExtensions[ext]
}

// RequiresConversion reports whether files with this extension go through a
// document converter rather than a direct read.
func RequiresConversion(ext string) bool {
	return convertExtensions[strings.ToLower(ext)]
}

// FromFile extracts the text content of the resume file at path.
func FromFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(
				errors.ErrCodeFileNotFound,
				"file does not exist",
				err,
			).WithContext("file", path)
		}
		return "", errors.NewIOError(
			errors.ErrCodeFileNotReadable,
			"file is not accessible",
			err,
		).WithContext("file", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var text string

	switch {
	case directReadExtensions[ext]:
		content, err := os.ReadFile(path)
		if err != nil {
			return "", errors.NewIOError(
				errors.ErrCodeFileNotReadable,
				"failed to read file",
				err,
			).WithContext("file", path)
		}
		text = string(content)

	case convertExtensions[ext]:
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", errors.NewExtractionError(
				errors.ErrCodeNoTextExtracted,
				"document conversion failed",
				err,
			).WithContext("file", path)
		}
		text = res.Body

	default:
		return "", errors.NewValidationError(
			errors.ErrCodeUnsupportedFile,
			"unsupported file type",
			nil,
		).WithContext("file", path).WithContext("extension", ext)
	}

	if len(strings.TrimSpace(text)) < minTextLen {
		return "", errors.NewExtractionError(
			errors.ErrCodeNoTextExtracted,
			"file contains too little text to be a resume",
			nil,
		).WithContext("file", path).WithContext("extracted_length", len(strings.TrimSpace(text)))
	}
	return text, nil
}
