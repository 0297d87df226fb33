package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Parser.MaxDepth != 512 || cfg.Parser.MaxErrors != 0 {
		t.Errorf("unexpected parser defaults: %+v", cfg.Parser)
	}
	if cfg.Server.Addr() != "localhost:5159" {
		t.Errorf("unexpected address %s", cfg.Server.Addr())
	}
	if cfg.Server.ReadTimeout.Duration != 10*time.Second {
		t.Errorf("unexpected read timeout %v", cfg.Server.ReadTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "golite.toml", `
[parser]
max_depth = 64
max_errors = 5

[log]
level = "debug"

[server]
port = 9000
read_timeout = "2s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Parser.MaxDepth != 64 || cfg.Parser.MaxErrors != 5 {
		t.Errorf("unexpected parser config: %+v", cfg.Parser)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("unexpected log level %q", cfg.Log.Level)
	}
	if cfg.Server.Port != 9000 || cfg.Server.Host != "localhost" {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout.Duration != 2*time.Second || cfg.Server.WriteTimeout.Duration != 10*time.Second {
		t.Errorf("unexpected timeouts: %v / %v", cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "golite.yaml", `
parser:
  max_errors: 3
log:
  level: warn
  file: /tmp/golite.log
server:
  host: 0.0.0.0
  write_timeout: 1m
  max_body_bytes: 2048
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Parser.MaxDepth != 512 || cfg.Parser.MaxErrors != 3 {
		t.Errorf("unexpected parser config: %+v", cfg.Parser)
	}
	if cfg.Log.Level != "warn" || cfg.Log.File != "/tmp/golite.log" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Server.Addr() != "0.0.0.0:5159" || cfg.Server.MaxBodyBytes != 2048 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout.Duration != time.Minute {
		t.Errorf("unexpected write timeout %v", cfg.Server.WriteTimeout)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}

	bad := writeFile(t, "bad.toml", "[parser\nmax_depth = 1")
	if _, err := Load(bad); err == nil {
		t.Errorf("expected parse error")
	}

	badDuration := writeFile(t, "dur.yaml", "server:\n  read_timeout: soon\n")
	if _, err := Load(badDuration); err == nil {
		t.Errorf("expected duration error")
	}

	badLevel := writeFile(t, "level.toml", "[log]\nlevel = \"loud\"\n")
	if _, err := Load(badLevel); err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Errorf("expected log level error, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvVar, "")
	cfg, err := LoadFromEnv()
	if err != nil || cfg.Server.Port != 5159 {
		t.Fatalf("expected defaults, got %+v, %v", cfg, err)
	}

	path := writeFile(t, "env.toml", "[server]\nport = 7000\n")
	t.Setenv(EnvVar, path)
	cfg, err = LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("expected port 7000, got %d", cfg.Server.Port)
	}
}
