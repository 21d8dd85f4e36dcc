// Package memory provides in-memory implementations of the storage
// ports. A fresh store per process (or per test) is the point:
// persistence across restarts is out of scope.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
	"github.com/askpaper/askpaper-cli/internal/core/ports/driven"
)

// Ensure DocumentRegistry implements the interface.
var _ driven.DocumentStore = (*DocumentRegistry)(nil)

// DocumentRegistry is an in-memory implementation of driven.DocumentStore.
// It tracks uploaded documents, their chunks and their lifecycle state,
// and enforces the status machine on every transition.
type DocumentRegistry struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string][]domain.Chunk // documentID -> ordered chunks
	chunkDocs map[string]string         // chunkID -> documentID
}

// NewDocumentRegistry creates a new in-memory document registry.
func NewDocumentRegistry() *DocumentRegistry {
	return &DocumentRegistry{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string][]domain.Chunk),
		chunkDocs: make(map[string]string),
	}
}

// SaveDocument stores or updates a document.
func (r *DocumentRegistry) SaveDocument(_ context.Context, doc *domain.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("%w: document ID is required", domain.ErrValidation)
	}
	if !doc.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, doc.Status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents[doc.ID] = *doc
	return nil
}

// GetDocument retrieves a document by ID.
// Deleted documents are reported as not found.
func (r *DocumentRegistry) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.documents[id]
	if !ok || doc.Status == domain.StatusDeleted {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all non-deleted documents ordered by upload
// time, then ID for a stable order between equal timestamps.
func (r *DocumentRegistry) ListDocuments(_ context.Context) ([]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Document, 0, len(r.documents))
	for _, doc := range r.documents {
		if doc.Status != domain.StatusDeleted {
			result = append(result, doc)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].UploadedAt.Equal(result[j].UploadedAt) {
			return result[i].UploadedAt.Before(result[j].UploadedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// CountDocuments returns the number of non-deleted documents.
func (r *DocumentRegistry) CountDocuments(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, doc := range r.documents {
		if doc.Status != domain.StatusDeleted {
			count++
		}
	}
	return count, nil
}

// Transition moves a document to a new lifecycle status.
func (r *DocumentRegistry) Transition(_ context.Context, id string, next domain.DocumentStatus, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transition(id, next, reason)
}

// transition applies a status change (caller must hold the write lock).
func (r *DocumentRegistry) transition(id string, next domain.DocumentStatus, reason string) error {
	doc, ok := r.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !doc.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s for document %s", domain.ErrInvalidTransition, doc.Status, next, id)
	}

	doc.Status = next
	if next == domain.StatusFailed {
		doc.FailureReason = reason
	}
	r.documents[id] = doc
	return nil
}

// SaveChunks stores the chunks for a document, replacing any previous
// set, and records the document's chunk IDs in sequence order.
func (r *DocumentRegistry) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	docID := chunks[0].DocumentID
	for _, chunk := range chunks {
		if chunk.DocumentID != docID {
			return fmt.Errorf("%w: chunks span documents %s and %s",
				domain.ErrValidation, docID, chunk.DocumentID)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.documents[docID]
	if !ok {
		return domain.ErrNotFound
	}

	for _, chunk := range r.chunks[docID] {
		delete(r.chunkDocs, chunk.ID)
	}

	stored := make([]domain.Chunk, len(chunks))
	copy(stored, chunks)
	sort.Slice(stored, func(i, j int) bool { return stored[i].Position < stored[j].Position })

	chunkIDs := make([]string, len(stored))
	for i, chunk := range stored {
		chunkIDs[i] = chunk.ID
		r.chunkDocs[chunk.ID] = docID
	}

	r.chunks[docID] = stored
	doc.ChunkIDs = chunkIDs
	r.documents[docID] = doc
	return nil
}

// GetChunk retrieves a specific chunk by ID.
func (r *DocumentRegistry) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docID, ok := r.chunkDocs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for _, chunk := range r.chunks[docID] {
		if chunk.ID == id {
			return &chunk, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetChunks retrieves all chunks for a document in sequence order.
func (r *DocumentRegistry) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chunks, ok := r.chunks[documentID]
	if !ok {
		return nil, nil
	}
	result := make([]domain.Chunk, len(chunks))
	copy(result, chunks)
	return result, nil
}

// DeleteDocument marks the document deleted and drops its chunks.
func (r *DocumentRegistry) DeleteDocument(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.transition(id, domain.StatusDeleted, ""); err != nil {
		return err
	}

	for _, chunk := range r.chunks[id] {
		delete(r.chunkDocs, chunk.ID)
	}
	delete(r.chunks, id)
	return nil
}
