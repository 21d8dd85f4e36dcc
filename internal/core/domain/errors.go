package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates an upload was rejected before any state
	// mutation (bad file type, oversized file, empty filename).
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedFormat indicates no extractor handles the file type.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractionFailed indicates text extraction failed. The
	// document is marked failed and no chunks are created.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrInvalidTransition indicates a document status change the
	// lifecycle machine forbids (e.g. deleting a deleted document).
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmbeddingCapability indicates the embedding provider failed.
	// Transient: ingestion may be retried and the document stays in
	// processing; at query time retrieval fails rather than returning
	// partial results.
	ErrEmbeddingCapability = errors.New("embedding capability error")

	// ErrGenerationCapability indicates the generation provider failed.
	// The user turn is preserved, no assistant turn is appended, and
	// the caller may retry.
	ErrGenerationCapability = errors.New("generation capability error")

	// ErrEmbeddingUnavailable indicates no embedding service is
	// configured. Retrieval cannot run without one.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates no generation service is configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
