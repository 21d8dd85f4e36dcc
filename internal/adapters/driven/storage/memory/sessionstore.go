package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
	"github.com/askpaper/askpaper-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Session histories are append-only; turns are never modified or
// removed once recorded.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*domain.Session),
	}
}

// GetOrCreate returns the session with the given ID, creating an empty
// one on first use.
func (s *SessionStore) GetOrCreate(_ context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: session ID is required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		session = &domain.Session{
			ID:        id,
			CreatedAt: time.Now(),
		}
		s.sessions[id] = session
	}
	return copySession(session), nil
}

// Get returns the session with the given ID.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copySession(session), nil
}

// AppendTurn appends a turn to the session's history.
func (s *SessionStore) AppendTurn(_ context.Context, id string, turn domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	session.Turns = append(session.Turns, turn)
	return nil
}

// copySession returns a snapshot so callers cannot mutate stored state.
func copySession(session *domain.Session) *domain.Session {
	turns := make([]domain.Turn, len(session.Turns))
	copy(turns, session.Turns)
	return &domain.Session{
		ID:        session.ID,
		Turns:     turns,
		CreatedAt: session.CreatedAt,
	}
}
