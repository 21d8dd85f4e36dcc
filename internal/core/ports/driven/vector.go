package driven

import "context"

// VectorIndex provides similarity search over chunk embeddings.
// The engine guarantees the index only ever holds chunks of ready,
// non-deleted documents: document deletion removes vectors eagerly
// instead of filtering at query time.
type VectorIndex interface {
	// Add inserts a vector for the given chunk. Re-adding an existing
	// chunk ID replaces its vector (re-embedding only; not expected in
	// the normal flow).
	Add(ctx context.Context, chunkID, documentID string, embedding []float32) error

	// AddBatch inserts vectors for several chunks of one document.
	AddBatch(ctx context.Context, documentID string, chunkIDs []string, embeddings [][]float32) error

	// RemoveByDocument removes every vector belonging to the document.
	// Atomic with respect to concurrent searches: an in-flight search
	// sees either the pre- or post-removal state, never a partial one.
	RemoveByDocument(ctx context.Context, documentID string) error

	// Search finds the k most similar vectors to the query.
	// Results are sorted by descending similarity, ties broken by
	// ascending insertion order. k is clamped to the index size and an
	// empty index yields an empty result, not an error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Size returns the number of indexed vectors.
	Size(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// DocumentID is the chunk's owning document.
	DocumentID string

	// Similarity is the cosine similarity score (higher = more similar).
	Similarity float64
}
