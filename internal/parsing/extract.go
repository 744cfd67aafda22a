// Package parsing turns uploaded files into plain text.
package parsing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ExtractionError reports that a file could not be parsed in its
// declared format.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract text from %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SupportedFile reports whether the filename carries one of the
// accepted upload extensions.
func SupportedFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".txt":
		return true
	default:
		return false
	}
}

// Extract reads the file at path and returns its full text. The original
// filename decides the parser: PDFs are extracted page by page, DOCX
// paragraphs are joined with newlines, anything else is read verbatim
// as UTF-8.
func Extract(path string, filename string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Filename: filename, Err: err}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			return "", &ExtractionError{Filename: filename, Err: err}
		}
		return text, nil
	case ".docx":
		text, err := extractDocx(data)
		if err != nil {
			return "", &ExtractionError{Filename: filename, Err: err}
		}
		return text, nil
	default:
		if !utf8.Valid(data) {
			return "", &ExtractionError{Filename: filename, Err: fmt.Errorf("file is not valid UTF-8 text")}
		}
		return string(data), nil
	}
}
