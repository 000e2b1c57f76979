package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	ClientKey     string // shared credential identifying the front-end app
	SessionTTL    time.Duration
	SweepInterval time.Duration
	BcryptCost    int
	Env           string
	SeedDemoData  bool
}

// Load loads configuration from the environment (and an optional .env file)
// or sets defaults. CLIENT_KEY has no default: the server refuses to start
// without one.
func Load() (*Config, error) {
	// A missing .env file is fine; real env vars still apply.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	sweep, err := time.ParseDuration(getEnv("SESSION_SWEEP_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: %w", err)
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	clientKey := os.Getenv("CLIENT_KEY")
	if clientKey == "" {
		return nil, fmt.Errorf("CLIENT_KEY must be set")
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./portal.db"),
		ClientKey:     clientKey,
		SessionTTL:    ttl,
		SweepInterval: sweep,
		BcryptCost:    cost,
		Env:           getEnv("APP_ENV", "development"),
		SeedDemoData:  getEnv("SEED_DEMO_DATA", "true") == "true",
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
