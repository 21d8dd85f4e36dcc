// Package ai provides factory functions for creating the external
// capability adapters from configuration.
package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/askpaper/askpaper-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/askpaper/askpaper-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/askpaper/askpaper-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/askpaper/askpaper-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/askpaper/askpaper-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/askpaper/askpaper-cli/internal/adapters/driven/llm/openai"
	"github.com/askpaper/askpaper-cli/internal/core/domain"
	"github.com/askpaper/askpaper-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates an embedding service for the
// configured provider.
func CreateEmbeddingService(cfg file.ProviderConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  apiKey(cfg, "OPENAI_API_KEY"),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q",
			domain.ErrEmbeddingUnavailable, cfg.Provider)
	}
}

// CreateLLMService creates a generation service for the configured
// provider.
func CreateLLMService(cfg file.ProviderConfig) (driven.LLMService, error) {
	switch cfg.Provider {
	case "openai":
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  apiKey(cfg, "OPENAI_API_KEY"),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "anthropic":
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  apiKey(cfg, "ANTHROPIC_API_KEY"),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "ollama":
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q",
			domain.ErrLLMUnavailable, cfg.Provider)
	}
}

// ValidateEmbeddingService pings the service within a bounded timeout.
func ValidateEmbeddingService(svc driven.EmbeddingService) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}
	return nil
}

// ValidateLLMService pings the service within a bounded timeout.
func ValidateLLMService(svc driven.LLMService) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}
	return nil
}

// apiKey resolves the key from config, falling back to the provider's
// environment variable.
func apiKey(cfg file.ProviderConfig, envVar string) string {
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	return os.Getenv(envVar)
}
