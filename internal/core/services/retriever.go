package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
	"github.com/askpaper/askpaper-cli/internal/core/ports/driven"
	"github.com/askpaper/askpaper-cli/internal/logger"
)

// Retriever embeds queries and finds the most similar chunks in the
// corpus, hydrated with content and filename for citation.
type Retriever struct {
	docStore    driven.DocumentStore
	vectorIndex driven.VectorIndex
	embedding   driven.EmbeddingService
	topK        int
}

// NewRetriever creates a new retriever.
func NewRetriever(
	docStore driven.DocumentStore,
	vectorIndex driven.VectorIndex,
	embedding driven.EmbeddingService,
	topK int,
) *Retriever {
	return &Retriever{
		docStore:    docStore,
		vectorIndex: vectorIndex,
		embedding:   embedding,
		topK:        topK,
	}
}

// Retrieve returns the chunks most similar to the query, ordered by
// descending score. An empty corpus yields an empty result. An
// embedding failure is transient and surfaced to the caller; it is
// never treated as "no results".
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]domain.RetrievedChunk, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrValidation)
	}

	logger.Debug("Retrieving top %d chunks for query %q", r.topK, query)

	vector, err := r.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", domain.ErrEmbeddingCapability, err)
	}

	hits, err := r.vectorIndex.Search(ctx, vector, r.topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	results := make([]domain.RetrievedChunk, 0, len(hits))
	for _, hit := range hits {
		chunk, err := r.docStore.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			// The index only holds chunks of ready documents, but a
			// delete may land between search and hydration. Skip.
			logger.Debug("Chunk %s vanished during hydration: %v", hit.ChunkID, err)
			continue
		}
		doc, err := r.docStore.GetDocument(ctx, hit.DocumentID)
		if err != nil {
			logger.Debug("Document %s vanished during hydration: %v", hit.DocumentID, err)
			continue
		}
		results = append(results, domain.RetrievedChunk{
			Chunk:    *chunk,
			Filename: doc.Filename,
			Score:    hit.Similarity,
		})
	}

	logger.Debug("Retrieved %d chunks", len(results))
	return results, nil
}
