package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document for ingestion",
	Long: `Upload a document into the corpus. The file is validated
immediately; extraction, chunking and embedding run in the background.
Use "askpaper document status" to follow progress, or --wait to block
until ingestion settles.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

// uploadWait blocks the command until the document leaves processing.
var uploadWait bool

// --wait polling parameters. A document stuck in processing after a
// transient embedding failure never settles, so the wait is bounded.
const (
	uploadPollInterval = 200 * time.Millisecond
	uploadWaitTimeout  = 5 * time.Minute
)

func init() {
	uploadCmd.Flags().BoolVarP(&uploadWait, "wait", "w", false, "Wait for ingestion to finish")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	ctx := context.Background()
	id, err := documentService.Upload(ctx, filepath.Base(path), content)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Accepted: %s\n", id)

	if !uploadWait {
		cmd.Println("Ingestion runs in the background; check progress with: askpaper document status " + id)
		return nil
	}

	deadline := time.Now().Add(uploadWaitTimeout)
	for time.Now().Before(deadline) {
		doc, err := documentService.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("poll status: %w", err)
		}
		switch doc.Status {
		case domain.StatusReady:
			cmd.Printf("Ready: %d chunks indexed\n", len(doc.ChunkIDs))
			return nil
		case domain.StatusFailed:
			return fmt.Errorf("ingestion failed: %s", doc.FailureReason)
		}
		time.Sleep(uploadPollInterval)
	}

	return fmt.Errorf("document %s still processing after %s; it may need a retry", id, uploadWaitTimeout)
}
