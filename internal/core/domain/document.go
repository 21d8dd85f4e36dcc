package domain

import "time"

// DocumentStatus is the lifecycle state of an uploaded document.
type DocumentStatus string

// Document lifecycle states.
const (
	// StatusProcessing means the document is accepted and ingestion
	// (extraction, chunking, embedding) is in flight.
	StatusProcessing DocumentStatus = "processing"

	// StatusReady means ingestion completed and the document's chunks
	// are searchable.
	StatusReady DocumentStatus = "ready"

	// StatusFailed means ingestion failed. The failure reason is
	// recorded on the document; no chunks were indexed.
	StatusFailed DocumentStatus = "failed"

	// StatusDeleted means the document was removed. Its chunks are
	// gone from the vector index.
	StatusDeleted DocumentStatus = "deleted"
)

// IsValid returns true if the status is recognised.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusProcessing, StatusReady, StatusFailed, StatusDeleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the status machine permits moving to next.
// Permitted transitions:
//
//	processing -> ready | failed
//	ready      -> deleted
//	failed     -> deleted
//
// Nothing leaves deleted. Failed is terminal for ingestion but the
// document remains deletable.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	switch s {
	case StatusProcessing:
		return next == StatusReady || next == StatusFailed
	case StatusReady:
		return next == StatusDeleted
	case StatusFailed:
		return next == StatusDeleted
	default:
		return false
	}
}

// String returns the string representation.
func (s DocumentStatus) String() string {
	return string(s)
}

// Document represents an uploaded document and its lifecycle state.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original name of the uploaded file.
	Filename string

	// Status is the current lifecycle state.
	Status DocumentStatus

	// FailureReason explains a failed ingestion. Empty unless Status
	// is StatusFailed.
	FailureReason string

	// UploadedAt is when the upload was accepted.
	UploadedAt time.Time

	// ChunkIDs lists the document's chunk IDs in sequence order.
	// Populated when ingestion completes.
	ChunkIDs []string
}

// Chunk represents a retrievable unit of document text.
// Documents are split into overlapping chunks for granular retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Position is the ordinal position within the document.
	Position int

	// Content is the text content of this chunk. Its length never
	// exceeds the configured chunk size.
	Content string

	// StartOffset and EndOffset locate the chunk within the extracted
	// document text, for citation previews. Content == text[StartOffset:EndOffset].
	StartOffset int
	EndOffset   int

	// Embedding is the vector representation used for similarity
	// search. Produced once during ingestion and never mutated.
	Embedding []float32
}
