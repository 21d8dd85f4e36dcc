package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-off question about your documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question session",
	Long: `Starts a conversational session over your documents. Earlier
questions and answers in the session inform later ones.

The corpus lives in memory for the lifetime of the session, so
documents are added from within it:

  /upload <path>   ingest a file
  /documents       list documents
  /delete <id>     remove a document
  /help            show commands

Exit with "quit" or Ctrl-D.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

// askSessionID continues an existing session instead of a fresh one.
var askSessionID string

// askShowSources prints the cited excerpts after the answer.
var askShowSources bool

func init() {
	askCmd.Flags().StringVarP(&askSessionID, "session", "s", "", "Session ID to continue")
	askCmd.Flags().BoolVar(&askShowSources, "sources", false, "Print cited source excerpts")
	chatCmd.Flags().BoolVar(&askShowSources, "sources", false, "Print cited source excerpts")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	sessionID := askSessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	question := strings.Join(args, " ")
	answer, err := chatService.Chat(context.Background(), sessionID, question)
	if err != nil {
		return describeChatError(err)
	}

	printAnswer(cmd, answer)
	cmd.Printf("\nSession: %s (continue with --session)\n", answer.SessionID)
	return nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	sessionID := uuid.New().String()
	cmd.Printf("Session %s. Ask away; \"quit\" to exit.\n\n", sessionID)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "quit" || question == "exit" {
			break
		}
		if strings.HasPrefix(question, "/") {
			runChatCommand(cmd, question)
			continue
		}

		answer, err := chatService.Chat(context.Background(), sessionID, question)
		if err != nil {
			cmd.Printf("Error: %v\n\n", describeChatError(err))
			continue
		}

		printAnswer(cmd, answer)
		cmd.Println()
	}
	return scanner.Err()
}

// runChatCommand handles the corpus commands available inside a chat
// session.
func runChatCommand(cmd *cobra.Command, line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/upload":
		if len(fields) != 2 {
			cmd.Println("Usage: /upload <path>")
			return
		}
		if documentService == nil {
			cmd.Println("Document service not configured.")
			return
		}
		content, err := os.ReadFile(fields[1])
		if err != nil {
			cmd.Printf("Cannot read %s: %v\n", fields[1], err)
			return
		}
		id, err := documentService.Upload(context.Background(), filepath.Base(fields[1]), content)
		if err != nil {
			cmd.Printf("Upload rejected: %v\n", err)
			return
		}
		cmd.Printf("Accepted: %s (indexing in the background)\n", id)

	case "/documents":
		if documentService == nil {
			cmd.Println("Document service not configured.")
			return
		}
		docs, err := documentService.List(context.Background())
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			return
		}
		if len(docs) == 0 {
			cmd.Println("No documents yet. Add one with /upload <path>.")
			return
		}
		for i := range docs {
			cmd.Printf("  %s  %-12s %s\n", docs[i].ID, docs[i].Status, docs[i].Filename)
		}

	case "/delete":
		if len(fields) != 2 {
			cmd.Println("Usage: /delete <id>")
			return
		}
		if documentService == nil {
			cmd.Println("Document service not configured.")
			return
		}
		if err := documentService.Delete(context.Background(), fields[1]); err != nil {
			cmd.Printf("Delete failed: %v\n", err)
			return
		}
		cmd.Printf("Deleted %s\n", fields[1])

	case "/help":
		cmd.Println("Commands: /upload <path>, /documents, /delete <id>, /help; \"quit\" exits.")

	default:
		cmd.Printf("Unknown command %s. Try /help.\n", fields[0])
	}
}

// printAnswer prints the answer text and its citations.
func printAnswer(cmd *cobra.Command, answer *domain.Answer) {
	cmd.Println(answer.Text)

	if len(answer.Citations) == 0 {
		return
	}

	cmd.Println("\nSources:")
	for i, c := range answer.Citations {
		cmd.Printf("  [%d] %s (score %.3f)\n", i+1, c.Filename, c.Score)
		if askShowSources {
			cmd.Printf("      %s\n", excerpt(c.ChunkText, 160))
		}
	}
}

// describeChatError maps capability failures to actionable messages.
func describeChatError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmbeddingCapability):
		return fmt.Errorf("embedding provider unavailable, try again: %w", err)
	case errors.Is(err, domain.ErrGenerationCapability):
		return fmt.Errorf("generation provider unavailable, your question was kept, try again: %w", err)
	default:
		return err
	}
}

// excerpt returns at most n characters of s on a single line.
func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
