package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show corpus health",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	health, err := documentService.Health(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get health: %w", err)
	}

	cmd.Printf("Documents: %d\n", health.DocumentCount)
	cmd.Printf("Indexed vectors: %d\n", health.IndexSize)
	return nil
}
