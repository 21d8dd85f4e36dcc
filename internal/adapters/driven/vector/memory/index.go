// Package memory provides an in-memory vector index using brute-force
// cosine similarity. Suited to corpora of user uploads within a single
// process; an approximate index would replace it at larger scale.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/askpaper/askpaper-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is a stored vector with its provenance.
type entry struct {
	chunkID    string
	documentID string
	embedding  []float32

	// seq is the insertion sequence number, used as a deterministic
	// tie-break when similarity scores are equal.
	seq uint64
}

// Index is an in-memory implementation of driven.VectorIndex.
//
// Searches take the read lock and may run concurrently; insertions and
// document removals take the write lock, so an in-flight search sees
// either the pre- or post-mutation state, never a partial one.
type Index struct {
	mu      sync.RWMutex
	entries map[string]*entry // chunkID -> entry
	byDoc   map[string][]string
	nextSeq uint64
}

// NewIndex creates an empty in-memory vector index.
func NewIndex() *Index {
	return &Index{
		entries: make(map[string]*entry),
		byDoc:   make(map[string][]string),
	}
}

// Add inserts a vector for the given chunk.
// Re-adding an existing chunk ID replaces its vector in place and keeps
// its original insertion order.
func (ix *Index) Add(_ context.Context, chunkID, documentID string, embedding []float32) error {
	if chunkID == "" || documentID == "" {
		return fmt.Errorf("vector index: chunk and document IDs are required")
	}
	if len(embedding) == 0 {
		return fmt.Errorf("vector index: empty embedding for chunk %s", chunkID)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.add(chunkID, documentID, embedding)
	return nil
}

// AddBatch inserts vectors for several chunks of one document.
// The whole batch becomes visible to searches at once.
func (ix *Index) AddBatch(_ context.Context, documentID string, chunkIDs []string, embeddings [][]float32) error {
	if len(chunkIDs) != len(embeddings) {
		return fmt.Errorf("vector index: %d chunk IDs but %d embeddings", len(chunkIDs), len(embeddings))
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	for i, id := range chunkIDs {
		if len(embeddings[i]) == 0 {
			return fmt.Errorf("vector index: empty embedding for chunk %s", id)
		}
		ix.add(id, documentID, embeddings[i])
	}
	return nil
}

// add stores an entry (caller must hold the write lock).
func (ix *Index) add(chunkID, documentID string, embedding []float32) {
	if existing, ok := ix.entries[chunkID]; ok {
		// Re-embedding: replace the vector, keep insertion order.
		existing.embedding = embedding
		return
	}

	ix.entries[chunkID] = &entry{
		chunkID:    chunkID,
		documentID: documentID,
		embedding:  embedding,
		seq:        ix.nextSeq,
	}
	ix.nextSeq++
	ix.byDoc[documentID] = append(ix.byDoc[documentID], chunkID)
}

// RemoveByDocument removes every vector belonging to the document.
// Removing an unindexed document is a no-op.
func (ix *Index) RemoveByDocument(_ context.Context, documentID string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, chunkID := range ix.byDoc[documentID] {
		delete(ix.entries, chunkID)
	}
	delete(ix.byDoc, documentID)
	return nil
}

// Search finds the k most similar vectors to the query.
func (ix *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("vector index: k must be positive, got %d", k)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.entries) == 0 {
		return []driven.VectorHit{}, nil
	}

	type scored struct {
		e     *entry
		score float64
	}

	candidates := make([]scored, 0, len(ix.entries))
	for _, e := range ix.entries {
		score, err := cosineSimilarity(query, e.embedding)
		if err != nil {
			return nil, fmt.Errorf("score chunk %s: %w", e.chunkID, err)
		}
		candidates = append(candidates, scored{e: e, score: score})
	}

	// Descending score; equal scores fall back to ascending insertion
	// order so repeated searches are reproducible.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].e.seq < candidates[j].e.seq
	})

	if k > len(candidates) {
		k = len(candidates)
	}

	hits := make([]driven.VectorHit, k)
	for i := 0; i < k; i++ {
		hits[i] = driven.VectorHit{
			ChunkID:    candidates[i].e.chunkID,
			DocumentID: candidates[i].e.documentID,
			Similarity: candidates[i].score,
		}
	}
	return hits, nil
}

// Size returns the number of indexed vectors.
func (ix *Index) Size(_ context.Context) (int, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries), nil
}

// Close releases resources.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = make(map[string]*entry)
	ix.byDoc = make(map[string][]string)
	return nil
}

// cosineSimilarity computes dot(a,b) / (|a| * |b|).
// Returns a value in [-1, 1]; zero vectors score 0 rather than erroring
// so a degenerate embedding ranks last instead of failing the search.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dimension mismatch: %d != %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("empty vectors")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
