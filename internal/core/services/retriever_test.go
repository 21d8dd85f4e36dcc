package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askpaper/askpaper-cli/internal/adapters/driven/storage/memory"
	vectormem "github.com/askpaper/askpaper-cli/internal/adapters/driven/vector/memory"
	"github.com/askpaper/askpaper-cli/internal/core/domain"
)

// retrieverFixture seeds a ready document with pinned chunk vectors so
// similarity ordering is fully under the test's control.
type retrieverFixture struct {
	retriever *Retriever
	docStore  *memory.DocumentRegistry
	index     *vectormem.Index
	embedder  *fakeEmbedder
}

func newRetrieverFixture(t *testing.T, topK int) *retrieverFixture {
	t.Helper()

	fx := &retrieverFixture{
		docStore: memory.NewDocumentRegistry(),
		index:    vectormem.NewIndex(),
		embedder: newFakeEmbedder(),
	}
	// Seeded chunk vectors in these fixtures are 3-dimensional.
	fx.embedder.dims = 3
	fx.retriever = NewRetriever(fx.docStore, fx.index, fx.embedder, topK)
	return fx
}

// seedChunk stores a ready document chunk and indexes it under the
// given vector. Chunks accumulate per document.
func (fx *retrieverFixture) seedChunk(t *testing.T, docID, chunkID, filename, content string, vector []float32) {
	t.Helper()
	ctx := context.Background()

	if _, err := fx.docStore.GetDocument(ctx, docID); err != nil {
		require.NoError(t, fx.docStore.SaveDocument(ctx, &domain.Document{
			ID:         docID,
			Filename:   filename,
			Status:     domain.StatusReady,
			UploadedAt: time.Now(),
		}))
	}
	existing, err := fx.docStore.GetChunks(ctx, docID)
	require.NoError(t, err)
	chunks := append(existing, domain.Chunk{
		ID: chunkID, DocumentID: docID, Position: len(existing), Content: content, Embedding: vector,
	})
	require.NoError(t, fx.docStore.SaveChunks(ctx, chunks))
	require.NoError(t, fx.index.Add(ctx, chunkID, docID, vector))
}

func TestRetriever_Retrieve_OrdersByScore(t *testing.T) {
	fx := newRetrieverFixture(t, 5)
	ctx := context.Background()

	fx.seedChunk(t, "doc-a", "c-far", "far.txt", "unrelated text", []float32{0, 1, 0})
	fx.seedChunk(t, "doc-b", "c-near", "near.txt", "relevant text", []float32{1, 0, 0})

	fx.embedder.pin("the query", []float32{1, 0.1, 0})

	results, err := fx.retriever.Retrieve(ctx, "the query")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "c-near", results[0].Chunk.ID)
	assert.Equal(t, "near.txt", results[0].Filename)
	assert.Equal(t, "relevant text", results[0].Chunk.Content)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestRetriever_Retrieve_ClampsToCorpusSize(t *testing.T) {
	fx := newRetrieverFixture(t, 5)

	fx.seedChunk(t, "doc-a", "c1", "a.txt", "one", []float32{1, 0, 0})
	fx.seedChunk(t, "doc-a", "c2", "a.txt", "two", []float32{0, 1, 0})

	results, err := fx.retriever.Retrieve(context.Background(), "anything at all")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRetriever_Retrieve_EmptyCorpus(t *testing.T) {
	fx := newRetrieverFixture(t, 5)

	results, err := fx.retriever.Retrieve(context.Background(), "a question")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetriever_Retrieve_EmptyQuery(t *testing.T) {
	fx := newRetrieverFixture(t, 5)

	_, err := fx.retriever.Retrieve(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRetriever_Retrieve_EmbeddingFailure(t *testing.T) {
	fx := newRetrieverFixture(t, 5)
	fx.embedder.setErr(errors.New("provider down"))

	_, err := fx.retriever.Retrieve(context.Background(), "a question")
	assert.ErrorIs(t, err, domain.ErrEmbeddingCapability)
}
