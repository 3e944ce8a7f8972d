package library

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Default API base URL when nothing is configured. Points at a local
// development instance of the lending service.
const defaultBaseURL = "http://localhost:5000/api"

// Config carries everything the client needs to reach the remote service and
// to find its local state.
type Config struct {
	// BaseURL is the root of the remote lending API, e.g.
	// https://library.example.com/api.
	BaseURL string
	// StatePath is the SQLite file holding the persisted session.
	StatePath string
}

// LoadConfig reads configuration from a .env file (if present) and the
// environment. Missing values fall back to defaults.
//
//	LIBRARY_API_URL  - remote API base URL
//	LIBRARY_STATE_DB - path of the local state database
func LoadConfig() Config {
	// A missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := Config{
		BaseURL:   os.Getenv("LIBRARY_API_URL"),
		StatePath: os.Getenv("LIBRARY_STATE_DB"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.StatePath == "" {
		cfg.StatePath = defaultStatePath()
	}
	return cfg
}

func defaultStatePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "library-client", "state.db")
	}
	return "library-client.db"
}
