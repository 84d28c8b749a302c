package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func TestLoadRequiresStorePathAndBindAddr(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{}`)

	if _, err := Load(path, filepath.Join(dir, ".env")); err == nil {
		t.Fatalf("expected error for missing required fields")
	}
}

func TestLoadDefaultsStoreBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"store_path":"ledger.jsonl","bind_addr":":8080"}`)

	cfg, err := Load(path, filepath.Join(dir, ".env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreBackend != StoreJSONLines {
		t.Fatalf("backend=%s want jsonlines", cfg.StoreBackend)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"store_path":"ledger.jsonl","bind_addr":":8080","store_backend":"mongo"}`)

	if _, err := Load(path, filepath.Join(dir, ".env")); err == nil {
		t.Fatalf("expected error for unknown store_backend")
	}
}

func TestLoadOverlaysChatBotTokenFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"store_path":"ledger.jsonl","bind_addr":":8080"}`)
	envPath := filepath.Join(dir, ".env")
	writeFile(t, envPath, "CENTRALBANK_CHAT_BOT_TOKEN=shh\n")
	defer os.Unsetenv("CENTRALBANK_CHAT_BOT_TOKEN")

	cfg, err := Load(path, envPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ChatBotToken != "shh" {
		t.Fatalf("ChatBotToken=%q want shh", cfg.ChatBotToken)
	}
}
