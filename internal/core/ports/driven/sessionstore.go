package driven

import (
	"context"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
)

// SessionStore persists conversation sessions.
// Sessions are created lazily on first use and live for the process
// lifetime; eviction is an external collaborator's concern.
type SessionStore interface {
	// GetOrCreate returns the session with the given ID, creating an
	// empty one if it does not exist.
	GetOrCreate(ctx context.Context, id string) (*domain.Session, error)

	// Get retrieves an existing session.
	// Returns domain.ErrNotFound for unknown IDs.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// AppendTurn appends a turn to the session's log.
	// Returns domain.ErrNotFound for unknown IDs.
	AppendTurn(ctx context.Context, id string, turn domain.Turn) error
}
