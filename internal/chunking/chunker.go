// Package chunking provides a fixed-size overlapping text chunker.
package chunking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
	"github.com/askpaper/askpaper-cli/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// Chunker splits extracted document text into overlapping, size-bounded
// chunks. Each consecutive pair of chunks shares `overlap` characters so
// no semantic unit is cut without context on both sides, and every chunk
// carries its byte offsets into the source text for citation previews.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
// Overlap >= chunk size is a configuration error: it would stall forward
// progress, and Settings.Validate rejects it at startup. New enforces the
// same invariant so a hand-constructed chunker cannot loop.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.overlap >= c.chunkSize {
		return nil, fmt.Errorf("%w: chunk overlap (%d) must be less than chunk size (%d)",
			domain.ErrValidation, c.overlap, c.chunkSize)
	}

	return c, nil
}

// FromSettings creates a chunker from validated settings.
func FromSettings(s domain.Settings) (*Chunker, error) {
	return New(WithChunkSize(s.ChunkSize), WithOverlap(s.ChunkOverlap))
}

// ChunkSize returns the configured maximum chunk size.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split chunks the text into overlapping segments.
// Empty text yields no chunks; the ingest pipeline treats that as
// "no extractable content" and fails the document.
func (c *Chunker) Split(_ context.Context, documentID, text string) ([]domain.Chunk, error) {
	if text == "" {
		return nil, nil
	}

	step := c.chunkSize - c.overlap
	textLen := len(text)
	chunks := make([]domain.Chunk, 0, textLen/step+1)

	position := 0
	for start := 0; start < textLen; start += step {
		end := start + c.chunkSize
		if end > textLen {
			end = textLen
		}

		chunks = append(chunks, domain.Chunk{
			ID:          uuid.New().String(),
			DocumentID:  documentID,
			Position:    position,
			Content:     text[start:end],
			StartOffset: start,
			EndOffset:   end,
		})
		position++

		// The final chunk may be shorter than chunkSize; once it
		// reaches the end of the text we are done.
		if end == textLen {
			break
		}
	}

	return chunks, nil
}
