package services

import (
	"context"
	"strings"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
	"github.com/askpaper/askpaper-cli/internal/core/ports/driven"
	"github.com/askpaper/askpaper-cli/internal/logger"
)

// promptPreamble instructs the model to answer strictly from the
// provided sources.
const promptPreamble = `You are a helpful assistant that answers questions about the user's documents.
Answer using only the provided source excerpts. If the excerpts do not
contain the answer, say so instead of guessing.`

// charsPerToken is the rough character-to-token ratio used to apply
// the history budget without a tokenizer.
const charsPerToken = 4

// ConversationManager maintains per-session history and assembles
// prompts from retrieved context and a budget-bounded history window.
type ConversationManager struct {
	sessions    driven.SessionStore
	tokenBudget int
}

// NewConversationManager creates a new conversation manager.
func NewConversationManager(sessions driven.SessionStore, tokenBudget int) *ConversationManager {
	return &ConversationManager{
		sessions:    sessions,
		tokenBudget: tokenBudget,
	}
}

// GetOrCreate returns the session with the given ID, creating it on
// first use.
func (m *ConversationManager) GetOrCreate(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.sessions.GetOrCreate(ctx, sessionID)
}

// Record appends a turn to the session's history.
func (m *ConversationManager) Record(ctx context.Context, sessionID string, turn domain.Turn) error {
	return m.sessions.AppendTurn(ctx, sessionID, turn)
}

// BuildPrompt assembles a generation prompt from the retrieved chunks,
// a window of the session's history and the current question.
//
// The stored history is never modified; budgeting only affects which
// turns make it into this prompt. The most recent turns win, but they
// are emitted oldest first so the model reads the conversation in
// order.
func (m *ConversationManager) BuildPrompt(session *domain.Session, retrieved []domain.RetrievedChunk, question string) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\n")

	budget := m.tokenBudget * charsPerToken

	if len(retrieved) > 0 {
		b.WriteString("Source excerpts:\n\n")
		for _, rc := range retrieved {
			b.WriteString("Source: ")
			b.WriteString(rc.Filename)
			b.WriteString("\nContent: ")
			b.WriteString(rc.Chunk.Content)
			b.WriteString("\n---\n")
			budget -= len(rc.Filename) + len(rc.Chunk.Content)
		}
		b.WriteString("\n")
	}

	if history := windowTurns(session.Turns, budget); len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, turn := range history {
			switch turn.Role {
			case domain.RoleUser:
				b.WriteString("User: ")
			case domain.RoleAssistant:
				b.WriteString("Assistant: ")
			}
			b.WriteString(turn.Content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Question: ")
	b.WriteString(question)

	prompt := b.String()
	logger.Debug("Assembled prompt: %d chars, %d source excerpts", len(prompt), len(retrieved))
	return prompt
}

// windowTurns selects the suffix of the history that fits within the
// remaining character budget. Turns are dropped oldest first and an
// overlong single turn is dropped rather than split.
func windowTurns(turns []domain.Turn, budget int) []domain.Turn {
	if budget <= 0 {
		return nil
	}

	used := 0
	start := len(turns)
	for i := len(turns) - 1; i >= 0; i-- {
		used += len(turns[i].Content)
		if used > budget {
			break
		}
		start = i
	}
	return turns[start:]
}
