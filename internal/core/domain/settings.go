package domain

import "fmt"

// Default configuration values.
const (
	// DefaultChunkSize is the default chunk size in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the default overlap between consecutive
	// chunks in characters.
	DefaultChunkOverlap = 200

	// DefaultTopK is the default number of chunks retrieved per query.
	DefaultTopK = 5

	// DefaultMaxFileSizeMB is the default upload size cap in megabytes,
	// enforced before extraction.
	DefaultMaxFileSizeMB = 50

	// DefaultHistoryTokenBudget bounds the combined size of history and
	// retrieved context included in a prompt, in approximate tokens.
	DefaultHistoryTokenBudget = 3000
)

// Settings holds the recognised configuration surface for the engine.
type Settings struct {
	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int

	// ChunkOverlap is the number of characters consecutive chunks
	// share. Must be strictly less than ChunkSize.
	ChunkOverlap int

	// TopK is the number of chunks retrieved per query.
	TopK int

	// MaxFileSizeMB caps upload size, enforced before extraction.
	MaxFileSizeMB int

	// HistoryTokenBudget bounds conversation context included in a
	// prompt, in approximate tokens.
	HistoryTokenBudget int
}

// DefaultSettings returns settings populated with the default values.
func DefaultSettings() Settings {
	return Settings{
		ChunkSize:          DefaultChunkSize,
		ChunkOverlap:       DefaultChunkOverlap,
		TopK:               DefaultTopK,
		MaxFileSizeMB:      DefaultMaxFileSizeMB,
		HistoryTokenBudget: DefaultHistoryTokenBudget,
	}
}

// Validate checks the settings for configuration errors.
// Overlap >= chunk size would stall the chunker's forward progress,
// so it is rejected here at startup rather than at chunk time.
func (s Settings) Validate() error {
	if s.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrValidation, s.ChunkSize)
	}
	if s.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk_overlap must not be negative, got %d", ErrValidation, s.ChunkOverlap)
	}
	if s.ChunkOverlap >= s.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap (%d) must be less than chunk_size (%d)",
			ErrValidation, s.ChunkOverlap, s.ChunkSize)
	}
	if s.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrValidation, s.TopK)
	}
	if s.MaxFileSizeMB <= 0 {
		return fmt.Errorf("%w: max_file_size_mb must be positive, got %d", ErrValidation, s.MaxFileSizeMB)
	}
	if s.HistoryTokenBudget <= 0 {
		return fmt.Errorf("%w: history_token_budget must be positive, got %d", ErrValidation, s.HistoryTokenBudget)
	}
	return nil
}

// MaxFileSizeBytes returns the upload size cap in bytes.
func (s Settings) MaxFileSizeBytes() int64 {
	return int64(s.MaxFileSizeMB) * 1024 * 1024
}
