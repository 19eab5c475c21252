package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.Server.Addr != ":8180" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.DBPath != "" {
		t.Errorf("default db path = %q", cfg.DBPath)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
db_path: /tmp/study.db
llm:
  provider: anthropic
  model: claude-sonnet
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBPath != "/tmp/study.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.LLM.Provider != "anthropic" || cfg.LLM.Model != "claude-sonnet" {
		t.Errorf("llm config = %+v", cfg.LLM)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.Addr != ":8180" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoad_ServerSection(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: 127.0.0.1:9999
  session_secret: hunter2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.SessionSecret != "hunter2" {
		t.Errorf("secret = %q", cfg.Server.SessionSecret)
	}
}

func TestLoad_RejectsBadProvider(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: skynet\n")
	if _, err := Load(path); err == nil {
		t.Error("unknown provider accepted")
	}
}

func TestLoad_RejectsEmptyAddr(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \"\"\n")
	if _, err := Load(path); err == nil {
		t.Error("empty addr accepted")
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml accepted")
	}
}
