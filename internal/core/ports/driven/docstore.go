package driven

import (
	"context"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
)

// DocumentStore is the registry of uploaded documents and their chunks.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound for unknown IDs and for deleted documents.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all non-deleted documents, ordered by
	// upload time then ID.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// CountDocuments returns the number of non-deleted documents.
	CountDocuments(ctx context.Context) (int, error)

	// Transition moves a document to a new lifecycle status.
	// Returns domain.ErrInvalidTransition when the status machine
	// forbids the move, domain.ErrNotFound for unknown IDs.
	Transition(ctx context.Context, id string, next domain.DocumentStatus, reason string) error

	// SaveChunks stores the chunks for a document.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// GetChunks retrieves all chunks for a document in sequence order.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// DeleteDocument marks the document deleted and drops its chunks.
	// Returns domain.ErrNotFound for unknown IDs and
	// domain.ErrInvalidTransition when the current status forbids deletion.
	DeleteDocument(ctx context.Context, id string) error
}
