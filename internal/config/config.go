// Package config loads process configuration from the environment,
// with a best-effort .env file in the working directory (same contract
// as the original dotenv setup: real environment variables win).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for optional settings.
const (
	DefaultModel       = "gpt-4o"
	DefaultMaxHistory  = 3
	DefaultMaxSessions = 128
	DefaultHTTPAddr    = ":8080"
	DefaultLinkTTL     = time.Hour
)

// Config holds everything the process reads from the environment.
type Config struct {
	// APIKey authenticates against the OpenAI API. Required for the
	// chat and serve commands; absence is a fatal startup error there.
	APIKey string
	// Model is the model selector passed to the gateway.
	Model string
	// MaxHistoryPairs bounds each session's conversation history.
	MaxHistoryPairs int
	// MaxSessions bounds the number of live sessions (LRU-evicted).
	MaxSessions int
	// HTTPAddr is the listen address for the URL shortener server.
	HTTPAddr string
	// DataDir holds the shortener database.
	DataDir string
	// LinkTTL is how long shortened links stay valid.
	LinkTTL time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present; variables already
// set in the environment take precedence. Load fails only on malformed
// values — a missing API key is checked separately by RequireAPIKey so
// commands that don't call the model (web) still start.
func Load() (Config, error) {
	// Ignore a missing .env; godotenv.Load never overrides existing env.
	_ = godotenv.Load()

	cfg := Config{
		APIKey:          os.Getenv("OPENAI_API_KEY"),
		Model:           envOr("PARLEY_MODEL", DefaultModel),
		MaxHistoryPairs: DefaultMaxHistory,
		MaxSessions:     DefaultMaxSessions,
		HTTPAddr:        envOr("PARLEY_HTTP_ADDR", DefaultHTTPAddr),
		DataDir:         os.Getenv("PARLEY_DATA_DIR"),
		LinkTTL:         DefaultLinkTTL,
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".parley")
	}

	if v := os.Getenv("PARLEY_MAX_HISTORY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("PARLEY_MAX_HISTORY must be a positive integer, got %q", v)
		}
		cfg.MaxHistoryPairs = n
	}

	if v := os.Getenv("PARLEY_MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("PARLEY_MAX_SESSIONS must be a positive integer, got %q", v)
		}
		cfg.MaxSessions = n
	}

	if v := os.Getenv("PARLEY_LINK_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("PARLEY_LINK_TTL must be a positive duration, got %q", v)
		}
		cfg.LinkTTL = d
	}

	return cfg, nil
}

// RequireAPIKey fails when no API credential is configured. Commands
// that talk to the model call this at startup.
func (c Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set — add it to your environment or .env file")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
