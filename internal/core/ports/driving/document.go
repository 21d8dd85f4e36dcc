package driving

import (
	"context"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
)

// DocumentService manages the document corpus.
type DocumentService interface {
	// Upload accepts a document for ingestion and returns its ID.
	// Validation (file type, size) happens synchronously; extraction,
	// chunking and embedding run in the background, with progress
	// visible through the document's status.
	Upload(ctx context.Context, filename string, content []byte) (string, error)

	// Retry re-runs ingestion for a document stuck in processing after
	// a transient embedding failure.
	Retry(ctx context.Context, documentID string) error

	// Get returns a document's metadata.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// List returns metadata for all non-deleted documents.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document and eagerly drops its chunks from the
	// vector index. Returns domain.ErrNotFound for unknown IDs.
	Delete(ctx context.Context, documentID string) error

	// Health reports corpus counters.
	Health(ctx context.Context) (Health, error)
}

// Health reports the engine's corpus counters.
type Health struct {
	// IndexSize is the number of vectors in the index.
	IndexSize int

	// DocumentCount is the number of non-deleted documents.
	DocumentCount int
}
