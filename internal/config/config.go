package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures the runtime configuration for the ClipBridge client.
type Config struct {
	APIBaseURL     string
	CallbackPort   int
	StateDir       string
	LogLevel       string
	LogFormat      string
	HTTPTimeout    time.Duration
	RequestsPerMin int
	RequestBurst   int
}

// Load reads configuration from environment variables, applying sensible
// defaults for local development while allowing overrides through the
// environment. A .env file in the working directory is loaded first when
// present; real environment variables win over .env entries.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:     strings.TrimRight(getString("CLIPBRIDGE_API_BASE_URL", "http://localhost:3000"), "/"),
		CallbackPort:   getInt("CLIPBRIDGE_CALLBACK_PORT", 8750),
		StateDir:       getString("CLIPBRIDGE_STATE_DIR", defaultStateDir()),
		LogLevel:       getString("CLIPBRIDGE_LOG_LEVEL", "info"),
		LogFormat:      getString("CLIPBRIDGE_LOG_FORMAT", "text"),
		HTTPTimeout:    getDuration("CLIPBRIDGE_HTTP_TIMEOUT", 5*time.Minute),
		RequestsPerMin: getInt("CLIPBRIDGE_REQUESTS_PER_MINUTE", 60),
		RequestBurst:   getInt("CLIPBRIDGE_REQUEST_BURST", 10),
	}

	return cfg, nil
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".clipbridge"
	}
	return filepath.Join(base, "clipbridge")
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
