package driving

import (
	"context"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
)

// ChatService answers questions over the document corpus.
type ChatService interface {
	// Chat answers a message within a conversation session, grounding
	// the answer in retrieved chunks and citing them. The session is
	// created lazily on first message.
	//
	// The user turn is recorded even when generation fails; the
	// assistant turn only on success.
	Chat(ctx context.Context, sessionID, message string) (*domain.Answer, error)
}
