package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
	"github.com/askpaper/askpaper-cli/internal/core/ports/driven"
	"github.com/askpaper/askpaper-cli/internal/core/ports/driving"
	"github.com/askpaper/askpaper-cli/internal/logger"
)

// Generation defaults for answer synthesis.
const (
	answerMaxTokens   = 1024
	answerTemperature = 0.2
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService answers questions over the corpus. It retrieves relevant
// chunks, assembles a prompt with conversation history, invokes the
// generation capability and packages the answer with citations.
type ChatService struct {
	retriever     *Retriever
	conversations *ConversationManager
	llm           driven.LLMService
}

// NewChatService creates a new chat service.
func NewChatService(retriever *Retriever, conversations *ConversationManager, llm driven.LLMService) *ChatService {
	return &ChatService{
		retriever:     retriever,
		conversations: conversations,
		llm:           llm,
	}
}

// Chat answers a message within a conversation session.
//
// The user turn is recorded once retrieval succeeds, before
// generation, so a generation failure preserves the question. The
// assistant turn is recorded only on success. Citations cover the full
// retrieval set surfaced in the prompt.
func (s *ChatService) Chat(ctx context.Context, sessionID, message string) (*domain.Answer, error) {
	logger.Section("Chat")
	logger.Debug("Session: %s", sessionID)

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is empty", domain.ErrValidation)
	}

	session, err := s.conversations.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	retrieved, err := s.retriever.Retrieve(ctx, message)
	if err != nil {
		return nil, err
	}

	if err := s.conversations.Record(ctx, session.ID, domain.Turn{
		Role:      domain.RoleUser,
		Content:   message,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("record user turn: %w", err)
	}

	prompt := s.conversations.BuildPrompt(session, retrieved, message)

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		logger.Warn("Generation failed for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationCapability, err)
	}

	citations := make([]domain.Citation, len(retrieved))
	citedIDs := make([]string, len(retrieved))
	for i, rc := range retrieved {
		citations[i] = domain.Citation{
			DocumentID: rc.Chunk.DocumentID,
			Filename:   rc.Filename,
			ChunkID:    rc.Chunk.ID,
			ChunkText:  rc.Chunk.Content,
			Score:      rc.Score,
		}
		citedIDs[i] = rc.Chunk.ID
	}

	if err := s.conversations.Record(ctx, session.ID, domain.Turn{
		Role:          domain.RoleAssistant,
		Content:       text,
		CitedChunkIDs: citedIDs,
		CreatedAt:     time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("record assistant turn: %w", err)
	}

	logger.Info("Answered in session %s with %d citations", sessionID, len(citations))

	return &domain.Answer{
		Text:      text,
		SessionID: session.ID,
		Citations: citations,
	}, nil
}
