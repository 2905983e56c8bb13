// Package config loads the process configuration once, at startup, into
// an explicit value. Nothing else in the module reads the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/pagebridge/pagebridge/wiki"
)

// Config is the full process configuration.
type Config struct {
	Wiki wiki.Config

	// HTTPAddr is the listen address for the HTTP transport, e.g.
	// ":8080". Empty selects the stdio transport.
	HTTPAddr string

	// ExportDir is where hierarchical exports are written.
	ExportDir string

	// ExportMaxPages bounds a single export run.
	ExportMaxPages int
}

// Load reads a .env file when present, then the environment. A missing
// .env file is not an error; missing required values are.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Wiki: wiki.Config{
			BaseURL:  os.Getenv("WIKI_BASE_URL"),
			Username: os.Getenv("WIKI_USERNAME"),
			APIToken: os.Getenv("WIKI_API_TOKEN"),
			SpaceKey: os.Getenv("WIKI_SPACE_KEY"),
		},
		HTTPAddr:  os.Getenv("PAGEBRIDGE_HTTP_ADDR"),
		ExportDir: os.Getenv("PAGEBRIDGE_EXPORT_DIR"),
	}

	if cfg.Wiki.BaseURL == "" {
		return nil, fmt.Errorf("config: WIKI_BASE_URL is required")
	}
	if cfg.Wiki.APIToken == "" {
		return nil, fmt.Errorf("config: WIKI_API_TOKEN is required")
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "export"
	}

	if raw := os.Getenv("PAGEBRIDGE_EXPORT_MAX_PAGES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: PAGEBRIDGE_EXPORT_MAX_PAGES must be a positive integer, got %q", raw)
		}
		cfg.ExportMaxPages = n
	}

	return cfg, nil
}
