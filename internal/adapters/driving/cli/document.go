package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage uploaded documents",
	Long:  `List, inspect, retry or delete uploaded documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentStatusCmd = &cobra.Command{
	Use:   "status [doc-id]",
	Short: "Show a document's ingestion status",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentStatus,
}

var documentRetryCmd = &cobra.Command{
	Use:   "retry [doc-id]",
	Short: "Retry embedding for a stuck document",
	Long:  `Re-runs embedding and indexing for a document left in processing by a transient provider failure.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRetry,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Long:  `Removes the document and immediately drops its chunks from the search index.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentStatusCmd)
	documentCmd.AddCommand(documentRetryCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents uploaded yet.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    File:     %s\n", docs[i].Filename)
		cmd.Printf("    Status:   %s\n", docs[i].Status)
		cmd.Printf("    Uploaded: %s\n", docs[i].UploadedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentStatus(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  File:     %s\n", doc.Filename)
	cmd.Printf("  Status:   %s\n", doc.Status)
	cmd.Printf("  Uploaded: %s\n", doc.UploadedAt.Format("2006-01-02 15:04:05"))
	if doc.Status == domain.StatusReady {
		cmd.Printf("  Chunks:   %d\n", len(doc.ChunkIDs))
	}
	if doc.FailureReason != "" {
		cmd.Printf("  Failure:  %s\n", doc.FailureReason)
	}
	return nil
}

func runDocumentRetry(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Retry(context.Background(), args[0]); err != nil {
		return fmt.Errorf("retry failed: %w", err)
	}

	cmd.Printf("Retrying ingestion for %s\n", args[0])
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
