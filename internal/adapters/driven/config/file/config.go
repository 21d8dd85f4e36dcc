// Package file provides TOML-backed configuration loading.
// Configuration lives in config.toml inside the askpaper config
// directory (~/.askpaper by default).
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/askpaper/askpaper-cli/internal/core/domain"
)

// ConfigFileName is the configuration file name inside the config dir.
const ConfigFileName = "config.toml"

// Config is the on-disk configuration surface.
type Config struct {
	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the overlap between consecutive chunks.
	ChunkOverlap int `toml:"chunk_overlap"`

	// TopK is the number of chunks retrieved per query.
	TopK int `toml:"top_k"`

	// MaxFileSizeMB caps upload size in megabytes.
	MaxFileSizeMB int `toml:"max_file_size_mb"`

	// HistoryTokenBudget bounds prompt history in approximate tokens.
	HistoryTokenBudget int `toml:"history_token_budget"`

	// Embedding configures the embedding provider.
	Embedding ProviderConfig `toml:"embedding"`

	// LLM configures the generation provider.
	LLM ProviderConfig `toml:"llm"`

	// Watch configures the optional drop-folder watcher.
	Watch WatchConfig `toml:"watch"`
}

// ProviderConfig selects and configures an external capability
// provider.
type ProviderConfig struct {
	// Provider is one of "openai", "anthropic" (generation only) or
	// "ollama".
	Provider string `toml:"provider"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates against the provider. Falls back to the
	// provider's conventional environment variable when empty.
	APIKey string `toml:"api_key"`
}

// WatchConfig configures the drop-folder watcher.
type WatchConfig struct {
	// Dir is the folder watched for new documents. Empty disables
	// watching.
	Dir string `toml:"dir"`
}

// DefaultConfig returns a config populated with defaults: OpenAI for
// both capabilities and the stock pipeline settings.
func DefaultConfig() Config {
	return Config{
		ChunkSize:          domain.DefaultChunkSize,
		ChunkOverlap:       domain.DefaultChunkOverlap,
		TopK:               domain.DefaultTopK,
		MaxFileSizeMB:      domain.DefaultMaxFileSizeMB,
		HistoryTokenBudget: domain.DefaultHistoryTokenBudget,
		Embedding:          ProviderConfig{Provider: "openai"},
		LLM:                ProviderConfig{Provider: "openai"},
	}
}

// DefaultConfigDir returns ~/.askpaper.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".askpaper"), nil
}

// Load reads config.toml from the given directory, filling unset
// fields with defaults. A missing file yields the defaults; a
// malformed file is an error.
func Load(configDir string) (Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// Save writes the config to config.toml in the given directory,
// creating the directory if needed.
func Save(configDir string, cfg Config) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	path := filepath.Join(configDir, ConfigFileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Settings converts the file config into domain settings.
func (c Config) Settings() domain.Settings {
	return domain.Settings{
		ChunkSize:          c.ChunkSize,
		ChunkOverlap:       c.ChunkOverlap,
		TopK:               c.TopK,
		MaxFileSizeMB:      c.MaxFileSizeMB,
		HistoryTokenBudget: c.HistoryTokenBudget,
	}
}

// applyDefaults fills zero-valued fields so a sparse config file still
// produces a fully usable configuration.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	if cfg.ChunkOverlap == 0 {
		cfg.ChunkOverlap = def.ChunkOverlap
	}
	if cfg.TopK == 0 {
		cfg.TopK = def.TopK
	}
	if cfg.MaxFileSizeMB == 0 {
		cfg.MaxFileSizeMB = def.MaxFileSizeMB
	}
	if cfg.HistoryTokenBudget == 0 {
		cfg.HistoryTokenBudget = def.HistoryTokenBudget
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = def.Embedding.Provider
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = def.LLM.Provider
	}
}
