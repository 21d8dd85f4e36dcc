package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
)

func TestPlainTextExtractor_Supports(t *testing.T) {
	e := NewPlainTextExtractor()

	assert.True(t, e.Supports("notes.txt"))
	assert.True(t, e.Supports("README.md"))
	assert.True(t, e.Supports("PAPER.TXT"))
	assert.True(t, e.Supports("guide.markdown"))

	assert.False(t, e.Supports("report.pdf"))
	assert.False(t, e.Supports("archive.zip"))
	assert.False(t, e.Supports("noextension"))
}

func TestPlainTextExtractor_Extract(t *testing.T) {
	e := NewPlainTextExtractor()

	text, err := e.Extract(context.Background(), "notes.txt", []byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestPlainTextExtractor_Extract_NormalisesLineEndings(t *testing.T) {
	e := NewPlainTextExtractor()

	text, err := e.Extract(context.Background(), "notes.txt", []byte("line one\r\nline two"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", text)
}

func TestPlainTextExtractor_Extract_UnsupportedFormat(t *testing.T) {
	e := NewPlainTextExtractor()

	_, err := e.Extract(context.Background(), "report.pdf", []byte("%PDF-1.4"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestPlainTextExtractor_Extract_InvalidUTF8(t *testing.T) {
	e := NewPlainTextExtractor()

	_, err := e.Extract(context.Background(), "notes.txt", []byte{0xff, 0xfe, 0x00})
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
