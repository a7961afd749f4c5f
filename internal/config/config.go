package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type CatalogConfig struct {
	URI        string `toml:"uri"`
	User       string `toml:"user"`
	Password   string `toml:"password"`
	TTLMinutes int    `toml:"ttl_minutes"`
	PageSize   int    `toml:"page_size"`
	// RecordShape selects how the source of record models initiators:
	// "initiator" (one record per initiator) or "initiators" (one record
	// per service with a list).
	RecordShape string `toml:"record_shape"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
// Every field can still be overridden through environment variables at
// server construction.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "gpt-oss:latest",
			BaseURL:  "http://localhost:11434",
		},
		Catalog: CatalogConfig{
			URI:         "bolt://localhost:7687",
			TTLMinutes:  5,
			PageSize:    100,
			RecordShape: "initiator",
		},
		Database: DatabaseConfig{
			Path: "query_builder.db",
		},
		Server: ServerConfig{
			Port: "8100",
		},
	}
}
