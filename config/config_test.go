package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
}

func TestLoadConfig_Defaults(t *testing.T) {
	writeConfig(t, `
http:
  addr: ":8084"
postgres:
  dsn: "postgres://localhost/petbuddy"
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Service != "chat-service" {
		t.Fatalf("expected default service name, got %q", cfg.Logging.Service)
	}
	if cfg.Logging.Env != "dev" || cfg.Logging.Backend != "std" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if got := cfg.PingInterval(); got != 15*time.Second {
		t.Fatalf("expected default ping interval, got %v", got)
	}
}

func TestLoadConfig_MissingAddr(t *testing.T) {
	writeConfig(t, `
postgres:
  dsn: "postgres://localhost/petbuddy"
`)

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing http.addr")
	}
}

func TestPingInterval_Parsed(t *testing.T) {
	writeConfig(t, `
http:
  addr: ":8084"
postgres:
  dsn: "postgres://localhost/petbuddy"
ws:
  pingEvery: 30s
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.PingInterval(); got != 30*time.Second {
		t.Fatalf("expected 30s, got %v", got)
	}
}
