package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebug_VerboseDisabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(false)

	Debug("hidden %d", 1)

	assert.Empty(t, buf.String())
}

func TestDebug_VerboseEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(true)
	defer SetVerbose(false)

	Debug("chunked %d segments", 4)

	assert.Contains(t, buf.String(), "[DEBUG] chunked 4 segments")
}

func TestError_AlwaysPrinted(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(false)

	Error("ingest %s failed", "doc-1")

	assert.Contains(t, buf.String(), "[ERROR] ingest doc-1 failed")
}

func TestSection_VerboseEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(true)
	defer SetVerbose(false)

	Section("Retrieval")

	assert.Contains(t, buf.String(), "=== Retrieval ===")
}
