// Package config loads the JSON configuration document of spec.md §6:
// store backend/path, HTTP bind address, and any external-collaborator
// credentials. Unknown fields are ignored by encoding/json already;
// required fields missing is a startup-time fatal error, surfaced here
// as a returned error for cmd/bankd to log.Fatal on.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// StoreBackend selects which ledger.Store implementation cmd/bankd
// constructs.
type StoreBackend string

const (
	StoreJSONLines StoreBackend = "jsonlines"
	StoreSQLite    StoreBackend = "sqlite"
)

// Config is the decoded shape of the JSON document named in spec.md §6.
type Config struct {
	StorePath    string       `json:"store_path"`
	StoreBackend StoreBackend `json:"store_backend"`
	BindAddr     string       `json:"bind_addr"`
	SnapshotPath string       `json:"snapshot_path,omitempty"`

	// ChatBotToken is read from the environment (see Load), not from the
	// JSON document, so operators can keep it out of version control.
	ChatBotToken string `json:"-"`
}

// Load reads the JSON config at path, then overlays environment
// variables from envPath (if it exists; godotenv.Load reports a missing
// .env file as an error, which Load ignores via os.IsNotExist) for any
// secret fields.
func Load(path, envPath string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: load %s: %w", envPath, err)
	}
	cfg.ChatBotToken = os.Getenv("CENTRALBANK_CHAT_BOT_TOKEN")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = StoreJSONLines
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("config: store_path is required")
	}
	if c.BindAddr == "" {
		return fmt.Errorf("config: bind_addr is required")
	}
	if c.StoreBackend != "" && c.StoreBackend != StoreJSONLines && c.StoreBackend != StoreSQLite {
		return fmt.Errorf("config: unknown store_backend %q", c.StoreBackend)
	}
	return nil
}
