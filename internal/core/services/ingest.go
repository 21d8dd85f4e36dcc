package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
	"github.com/askpaper/askpaper-cli/internal/core/ports/driven"
	"github.com/askpaper/askpaper-cli/internal/core/ports/driving"
	"github.com/askpaper/askpaper-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.DocumentService = (*IngestService)(nil)

// IngestService manages the document corpus: upload, the background
// ingestion pipeline (extract, chunk, embed, index), retry, deletion
// and health reporting.
type IngestService struct {
	docStore    driven.DocumentStore
	vectorIndex driven.VectorIndex
	embedding   driven.EmbeddingService
	extractor   driven.TextExtractor
	chunker     driven.Chunker
	settings    domain.Settings

	// mu serialises index-visible state changes (indexing a document's
	// vectors, removing them on delete) so a delete cannot interleave
	// with a finishing ingestion for the same document.
	mu sync.Mutex
	wg sync.WaitGroup
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	docStore driven.DocumentStore,
	vectorIndex driven.VectorIndex,
	embedding driven.EmbeddingService,
	extractor driven.TextExtractor,
	chunker driven.Chunker,
	settings domain.Settings,
) *IngestService {
	return &IngestService{
		docStore:    docStore,
		vectorIndex: vectorIndex,
		embedding:   embedding,
		extractor:   extractor,
		chunker:     chunker,
		settings:    settings,
	}
}

// Upload accepts a document for ingestion and returns its ID.
// Format and size are validated synchronously; the rest of the
// pipeline runs in the background with progress visible through the
// document's status.
func (s *IngestService) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	logger.Section("Document Upload")
	logger.Debug("Filename: %s, size: %d bytes", filename, len(content))

	if filename == "" {
		return "", fmt.Errorf("%w: filename is required", domain.ErrValidation)
	}
	if len(content) == 0 {
		return "", fmt.Errorf("%w: file is empty", domain.ErrValidation)
	}
	if int64(len(content)) > s.settings.MaxFileSizeBytes() {
		return "", fmt.Errorf("%w: file exceeds %d MB limit", domain.ErrValidation, s.settings.MaxFileSizeMB)
	}
	if !s.extractor.Supports(filename) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filename)
	}

	doc := &domain.Document{
		ID:         uuid.New().String(),
		Filename:   filename,
		Status:     domain.StatusProcessing,
		UploadedAt: time.Now(),
	}
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}

	logger.Info("Accepted %s as document %s", filename, doc.ID)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// The upload call returns before ingestion finishes, so the
		// pipeline must not inherit the request's cancellation.
		s.ingest(context.Background(), doc.ID, filename, content)
	}()

	return doc.ID, nil
}

// ingest runs the background pipeline for a freshly uploaded document.
// Extraction and chunking failures are permanent and mark the document
// failed; embedding failures are transient and leave it in processing
// so Retry can pick it up.
func (s *IngestService) ingest(ctx context.Context, documentID, filename string, content []byte) {
	text, err := s.extractor.Extract(ctx, filename, content)
	if err != nil {
		logger.Error("Extraction failed for %s: %v", documentID, err)
		s.fail(ctx, documentID, fmt.Sprintf("extraction failed: %v", err))
		return
	}
	if strings.TrimSpace(text) == "" {
		logger.Error("Document %s contains no extractable text", documentID)
		s.fail(ctx, documentID, "document contains no extractable text")
		return
	}

	chunks, err := s.chunker.Split(ctx, documentID, text)
	if err != nil {
		logger.Error("Chunking failed for %s: %v", documentID, err)
		s.fail(ctx, documentID, fmt.Sprintf("chunking failed: %v", err))
		return
	}
	if len(chunks) == 0 {
		logger.Error("Document %s contains no extractable text", documentID)
		s.fail(ctx, documentID, "document contains no extractable text")
		return
	}

	// Chunks are persisted before embedding so a transient embedding
	// failure can be retried without re-reading the original file.
	if err := s.docStore.SaveChunks(ctx, chunks); err != nil {
		logger.Error("Saving chunks failed for %s: %v", documentID, err)
		s.fail(ctx, documentID, fmt.Sprintf("saving chunks failed: %v", err))
		return
	}

	s.embedAndActivate(ctx, documentID, chunks)
}

// embedAndActivate embeds a document's chunks, indexes the vectors and
// marks the document ready. On embedding failure the document stays in
// processing.
func (s *IngestService) embedAndActivate(ctx context.Context, documentID string, chunks []domain.Chunk) {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	embeddings, err := s.embedding.EmbedBatch(ctx, texts)
	if err != nil {
		logger.Error("Embedding failed for %s, document stays in processing: %v", documentID, err)
		return
	}
	if len(embeddings) != len(chunks) {
		logger.Error("Embedding count mismatch for %s: %d chunks, %d vectors", documentID, len(chunks), len(embeddings))
		return
	}

	chunkIDs := make([]string, len(chunks))
	for i := range chunks {
		chunkIDs[i] = chunks[i].ID
		chunks[i].Embedding = embeddings[i]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		logger.Debug("Document %s gone before activation, dropping vectors", documentID)
		return
	}

	if err := s.docStore.SaveChunks(ctx, chunks); err != nil {
		logger.Error("Saving embedded chunks failed for %s: %v", documentID, err)
		return
	}
	if err := s.vectorIndex.AddBatch(ctx, documentID, chunkIDs, embeddings); err != nil {
		logger.Error("Indexing failed for %s: %v", documentID, err)
		return
	}
	if err := s.docStore.Transition(ctx, documentID, domain.StatusReady, ""); err != nil {
		logger.Error("Activation failed for %s: %v", documentID, err)
		return
	}

	logger.Info("Document %s ready: %d chunks indexed", documentID, len(chunks))
}

// fail marks the document failed with the given reason.
func (s *IngestService) fail(ctx context.Context, documentID, reason string) {
	if err := s.docStore.Transition(ctx, documentID, domain.StatusFailed, reason); err != nil {
		logger.Error("Marking %s failed: %v", documentID, err)
	}
}

// Retry re-runs embedding and indexing for a document stuck in
// processing after a transient embedding failure. The stored chunks
// are reused; extraction and chunking do not run again.
func (s *IngestService) Retry(ctx context.Context, documentID string) error {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.Status != domain.StatusProcessing {
		return fmt.Errorf("%w: document %s is %s, only processing documents can be retried",
			domain.ErrValidation, documentID, doc.Status)
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load chunks: %w", err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("%w: document %s has no chunks to retry", domain.ErrValidation, documentID)
	}

	logger.Info("Retrying embedding for document %s (%d chunks)", documentID, len(chunks))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.embedAndActivate(context.Background(), documentID, chunks)
	}()

	return nil
}

// Get returns a document's metadata.
func (s *IngestService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, documentID)
}

// List returns metadata for all non-deleted documents.
func (s *IngestService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Delete removes a document and eagerly drops its vectors from the
// index. After Delete returns, no search can surface the document's
// chunks.
func (s *IngestService) Delete(ctx context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		return err
	}
	if err := s.vectorIndex.RemoveByDocument(ctx, documentID); err != nil {
		return fmt.Errorf("remove vectors: %w", err)
	}

	logger.Info("Deleted document %s", documentID)
	return nil
}

// Health reports corpus counters.
func (s *IngestService) Health(ctx context.Context) (driving.Health, error) {
	size, err := s.vectorIndex.Size(ctx)
	if err != nil {
		return driving.Health{}, fmt.Errorf("index size: %w", err)
	}
	count, err := s.docStore.CountDocuments(ctx)
	if err != nil {
		return driving.Health{}, fmt.Errorf("document count: %w", err)
	}
	return driving.Health{IndexSize: size, DocumentCount: count}, nil
}

// Wait blocks until all in-flight background ingestions finish.
func (s *IngestService) Wait() {
	s.wg.Wait()
}
