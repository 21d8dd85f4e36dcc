// Package extract provides text extraction from uploaded files.
// Plain-text formats are handled natively; binary formats (PDF, DOCX)
// would plug in as further extractors behind the same interface.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
	"github.com/askpaper/askpaper-cli/internal/core/ports/driven"
)

// Ensure PlainTextExtractor implements the interface.
var _ driven.TextExtractor = (*PlainTextExtractor)(nil)

// plainTextExtensions are the file extensions handled natively.
var plainTextExtensions = map[string]bool{
	".txt":      true,
	".text":     true,
	".md":       true,
	".markdown": true,
	".rst":      true,
	".log":      true,
}

// PlainTextExtractor extracts text from plain-text file formats.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a new plain text extractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Supports reports whether the filename's extension is a plain-text
// format.
func (e *PlainTextExtractor) Supports(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return plainTextExtensions[ext]
}

// Extract converts file bytes to text. The bytes must be valid UTF-8;
// anything else fails extraction rather than producing mojibake chunks.
func (e *PlainTextExtractor) Extract(_ context.Context, filename string, content []byte) (string, error) {
	if !e.Supports(filename) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filename)
	}
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8 text", domain.ErrExtractionFailed, filename)
	}

	text := string(content)
	// Normalise Windows line endings so offsets are stable across
	// platforms.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return text, nil
}
