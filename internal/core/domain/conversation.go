package domain

import "time"

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	// RoleUser is a turn written by the user.
	RoleUser Role = "user"

	// RoleAssistant is a turn generated by the model.
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is a single message within a conversation session.
type Turn struct {
	// Role is who authored the turn.
	Role Role

	// Content is the message text.
	Content string

	// CitedChunkIDs are the chunks surfaced in the prompt that produced
	// this turn. Only set on assistant turns.
	CitedChunkIDs []string

	// CreatedAt is when the turn was recorded.
	CreatedAt time.Time
}

// Session is a conversation with its ordered turns.
// The turn log is append-only; prompt budgeting windows the log at
// read time and never mutates it.
type Session struct {
	// ID is the unique identifier for the session.
	ID string

	// Turns is the ordered, append-only message log.
	Turns []Turn

	// CreatedAt is when the session was lazily created.
	CreatedAt time.Time
}

// Citation is a reference from a generated answer back to a source chunk.
type Citation struct {
	// DocumentID identifies the source document.
	DocumentID string

	// Filename is the source document's original filename.
	Filename string

	// ChunkID identifies the cited chunk.
	ChunkID string

	// ChunkText is the cited chunk's content.
	ChunkText string

	// Score is the similarity score the chunk was retrieved with.
	Score float64
}

// Answer is a generated response with its source attributions.
// Citations cover the full retrieval set surfaced in the prompt,
// a conservative over-approximation of what the model actually used.
type Answer struct {
	// Text is the generated answer.
	Text string

	// SessionID is the conversation the answer belongs to.
	SessionID string

	// Citations attribute the answer to source chunks, ordered by
	// descending retrieval score.
	Citations []Citation
}

// RetrievedChunk pairs a chunk with its similarity score and the
// owning document's filename, hydrated for citation.
type RetrievedChunk struct {
	// Chunk is the retrieved chunk.
	Chunk Chunk

	// Filename is the owning document's original filename.
	Filename string

	// Score is the cosine similarity to the query (higher = more similar).
	Score float64
}
