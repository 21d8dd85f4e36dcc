package cli

import (
	"context"
	"hash/fnv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	storagemem "github.com/askpaper/askpaper-cli/internal/adapters/driven/storage/memory"
	vectormem "github.com/askpaper/askpaper-cli/internal/adapters/driven/vector/memory"
	"github.com/askpaper/askpaper-cli/internal/chunking"
	"github.com/askpaper/askpaper-cli/internal/core/domain"
	"github.com/askpaper/askpaper-cli/internal/core/ports/driven"
	"github.com/askpaper/askpaper-cli/internal/core/services"
)

// stubEmbedder embeds deterministically from the text's hash.
type stubEmbedder struct{}

var _ driven.EmbeddingService = (*stubEmbedder)(nil)

func (stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	state := h.Sum64()

	v := make([]float32, 8)
	for i := range v {
		state = state*6364136223846793005 + 1442695040888963407
		v[i] = float32(int64(state>>33)) / float32(1<<30)
	}
	return v, nil
}

func (s stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

func (stubEmbedder) Dimensions() int            { return 8 }
func (stubEmbedder) ModelName() string          { return "stub-embed" }
func (stubEmbedder) Ping(context.Context) error { return nil }
func (stubEmbedder) Close() error               { return nil }

// stubLLM answers every prompt with a fixed string.
type stubLLM struct{}

var _ driven.LLMService = (*stubLLM)(nil)

func (stubLLM) Generate(context.Context, string, driven.GenerateOptions) (string, error) {
	return "stub answer", nil
}
func (stubLLM) ModelName() string          { return "stub-llm" }
func (stubLLM) Ping(context.Context) error { return nil }
func (stubLLM) Close() error               { return nil }

// stubExtractor treats .txt and .md files as plain text.
type stubExtractor struct{}

var _ driven.TextExtractor = (*stubExtractor)(nil)

func (stubExtractor) Supports(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".txt" || ext == ".md"
}

func (stubExtractor) Extract(_ context.Context, _ string, content []byte) (string, error) {
	return string(content), nil
}

// setupTestServices wires real in-memory services behind the CLI and
// returns the ingest service (for Wait) and a cleanup func restoring
// the previous wiring.
func setupTestServices(t *testing.T) (*services.IngestService, func()) {
	t.Helper()

	settings := domain.DefaultSettings()
	settings.ChunkSize = 200
	settings.ChunkOverlap = 40

	chunker, err := chunking.FromSettings(settings)
	require.NoError(t, err)

	docStore := storagemem.NewDocumentRegistry()
	sessionStore := storagemem.NewSessionStore()
	index := vectormem.NewIndex()
	embedder := stubEmbedder{}

	ingest := services.NewIngestService(docStore, index, embedder, stubExtractor{}, chunker, settings)
	retriever := services.NewRetriever(docStore, index, embedder, settings.TopK)
	conversations := services.NewConversationManager(sessionStore, settings.HistoryTokenBudget)
	chat := services.NewChatService(retriever, conversations, stubLLM{})

	prevDoc, prevChat := documentService, chatService
	SetServices(ingest, chat)

	return ingest, func() {
		ingest.Wait()
		documentService, chatService = prevDoc, prevChat
	}
}
