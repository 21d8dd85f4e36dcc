package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	commands := documentCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "status")
	assert.Contains(t, commandNames, "retry")
	assert.Contains(t, commandNames, "delete")
}

func TestDocumentStatusCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"document", "status"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDocumentListCmd_EmptyCorpus(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "list"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No documents uploaded yet.")
}

func TestDocumentListCmd_ShowsUploadedDocument(t *testing.T) {
	ingest, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := ingest.Upload(context.Background(), "paper.txt", []byte("some interesting document content"))
	require.NoError(t, err)
	ingest.Wait()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "list"})
	defer rootCmd.SetArgs(nil)

	err = rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "paper.txt")
	assert.Contains(t, buf.String(), "ready")
	assert.Contains(t, buf.String(), "Total: 1 documents")
}

func TestDocumentStatusCmd_ShowsDocument(t *testing.T) {
	ingest, cleanup := setupTestServices(t)
	defer cleanup()

	id, err := ingest.Upload(context.Background(), "paper.txt", []byte("some interesting document content"))
	require.NoError(t, err)
	ingest.Wait()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "status", id})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "paper.txt")
	assert.Contains(t, buf.String(), "ready")
}

func TestDocumentDeleteCmd_RemovesDocument(t *testing.T) {
	ingest, cleanup := setupTestServices(t)
	defer cleanup()

	id, err := ingest.Upload(context.Background(), "paper.txt", []byte("some interesting document content"))
	require.NoError(t, err)
	ingest.Wait()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"document", "delete", id})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Deleted "+id)

	_, err = ingest.Get(context.Background(), id)
	assert.Error(t, err)
}

func TestDocumentDeleteCmd_UnknownID(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"document", "delete", "no-such-id"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestUploadCmd_IngestsFile(t *testing.T) {
	ingest, cleanup := setupTestServices(t)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("a short note about vector search"), 0600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"upload", path})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Accepted:")

	ingest.Wait()
	docs, err := ingest.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "notes.txt", docs[0].Filename)
}

func TestUploadCmd_MissingFile(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload", "/nonexistent/file.txt"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestStatusCmd_ReportsCounters(t *testing.T) {
	ingest, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := ingest.Upload(context.Background(), "paper.txt", []byte("some interesting document content"))
	require.NoError(t, err)
	ingest.Wait()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"status"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Documents: 1")
}
