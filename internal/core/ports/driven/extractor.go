package driven

import (
	"context"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
)

// TextExtractor converts uploaded file bytes into raw text.
// Format parsing is a black box to the core: implementations wrap
// whatever converter handles the format (plain text built in; PDF,
// DOCX and friends sit behind external converters).
type TextExtractor interface {
	// Supports reports whether the extractor handles the filename's
	// format (judged by extension).
	Supports(filename string) bool

	// Extract converts file bytes to raw text.
	// Returns domain.ErrUnsupportedFormat for formats it does not
	// handle and domain.ErrExtractionFailed when conversion fails.
	Extract(ctx context.Context, filename string, content []byte) (string, error)
}

// Chunker splits extracted document text into retrievable units.
type Chunker interface {
	// Split chunks the text into size-bounded, overlapping segments
	// with provenance offsets. Chunks come back with IDs and positions
	// assigned but embeddings unset. Empty text yields no chunks.
	Split(ctx context.Context, documentID, text string) ([]domain.Chunk, error)
}
