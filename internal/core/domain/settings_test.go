package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings_Valid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, 1000, s.ChunkSize)
	assert.Equal(t, 200, s.ChunkOverlap)
	assert.Equal(t, 5, s.TopK)
	assert.Equal(t, 50, s.MaxFileSizeMB)
}

func TestSettings_Validate_OverlapMustBeLessThanChunkSize(t *testing.T) {
	s := DefaultSettings()
	s.ChunkOverlap = s.ChunkSize

	err := s.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "chunk_overlap")
}

func TestSettings_Validate_RejectsNonPositiveChunkSize(t *testing.T) {
	s := DefaultSettings()
	s.ChunkSize = 0

	assert.ErrorIs(t, s.Validate(), ErrValidation)
}

func TestSettings_Validate_RejectsNegativeOverlap(t *testing.T) {
	s := DefaultSettings()
	s.ChunkOverlap = -1

	assert.ErrorIs(t, s.Validate(), ErrValidation)
}

func TestSettings_Validate_RejectsNonPositiveTopK(t *testing.T) {
	s := DefaultSettings()
	s.TopK = 0

	assert.ErrorIs(t, s.Validate(), ErrValidation)
}

func TestSettings_MaxFileSizeBytes(t *testing.T) {
	s := Settings{MaxFileSizeMB: 2}
	assert.Equal(t, int64(2*1024*1024), s.MaxFileSizeBytes())
}
