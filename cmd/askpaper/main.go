// askpaper is a document question-answering CLI. It ingests documents
// into an in-memory vector index and answers questions about them with
// cited sources.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/askpaper/askpaper-cli/internal/adapters/driven/ai"
	"github.com/askpaper/askpaper-cli/internal/adapters/driven/config/file"
	"github.com/askpaper/askpaper-cli/internal/adapters/driven/extract"
	storagemem "github.com/askpaper/askpaper-cli/internal/adapters/driven/storage/memory"
	vectormem "github.com/askpaper/askpaper-cli/internal/adapters/driven/vector/memory"
	"github.com/askpaper/askpaper-cli/internal/adapters/driving/cli"
	"github.com/askpaper/askpaper-cli/internal/chunking"
	"github.com/askpaper/askpaper-cli/internal/core/services"
	"github.com/askpaper/askpaper-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local overrides (API keys and the like); a missing .env is fine.
	_ = godotenv.Load()

	configDir := os.Getenv("ASKPAPER_CONFIG_DIR")
	if configDir == "" {
		var err error
		configDir, err = file.DefaultConfigDir()
		if err != nil {
			return err
		}
	}

	cfg, err := file.Load(configDir)
	if err != nil {
		return err
	}

	settings := cfg.Settings()
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	chunker, err := chunking.FromSettings(settings)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	docStore := storagemem.NewDocumentRegistry()
	sessionStore := storagemem.NewSessionStore()
	vectorIndex := vectormem.NewIndex()
	extractor := extract.NewPlainTextExtractor()

	embedder, err := ai.CreateEmbeddingService(cfg.Embedding)
	if err != nil {
		logger.Warn("Embedding service unavailable: %v", err)
	}
	llm, err := ai.CreateLLMService(cfg.LLM)
	if err != nil {
		logger.Warn("LLM service unavailable: %v", err)
	}

	if embedder != nil {
		defer embedder.Close()
		ingest := services.NewIngestService(docStore, vectorIndex, embedder, extractor, chunker, settings)
		defer ingest.Wait()

		if llm != nil {
			defer llm.Close()
			retriever := services.NewRetriever(docStore, vectorIndex, embedder, settings.TopK)
			conversations := services.NewConversationManager(sessionStore, settings.HistoryTokenBudget)
			cli.SetServices(ingest, services.NewChatService(retriever, conversations, llm))
		} else {
			cli.SetServices(ingest, nil)
		}
	}

	cli.SetVersion(version)
	return cli.Execute()
}
