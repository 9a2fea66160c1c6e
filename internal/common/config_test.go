package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 5000)
	}
	if cfg.Agent.BaseURL != "http://localhost:8000" {
		t.Errorf("Agent.BaseURL default = %q", cfg.Agent.BaseURL)
	}
	if cfg.Storage.CredentialsFile != "credentials.json" {
		t.Errorf("Storage.CredentialsFile default = %q", cfg.Storage.CredentialsFile)
	}
	if cfg.Demo.Email != "john.doe@example.com" {
		t.Errorf("Demo.Email default = %q", cfg.Demo.Email)
	}
	if cfg.News.Limit != 20 {
		t.Errorf("News.Limit default = %d, want 20", cfg.News.Limit)
	}
	if len(cfg.News.Feeds) != 2 {
		t.Errorf("expected 2 default feeds, got %v", cfg.News.Feeds)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("STOCKAI_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_PlatformPortEnv(t *testing.T) {
	t.Setenv("PORT", "7000")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}

	t.Setenv("STOCKAI_PORT", "7100")
	cfg = NewDefaultConfig()
	applyEnvOverrides(cfg)
	if cfg.Server.Port != 7100 {
		t.Errorf("STOCKAI_PORT should win over PORT, got %d", cfg.Server.Port)
	}
}

func TestConfig_InvalidPortEnvIgnored(t *testing.T) {
	t.Setenv("STOCKAI_PORT", "not-a-port")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want default 5000", cfg.Server.Port)
	}
}

func TestConfig_AgentURLEnvOverride(t *testing.T) {
	t.Setenv("PYTHON_AGENT_URL", "http://agent:8000")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)
	if cfg.Agent.BaseURL != "http://agent:8000" {
		t.Errorf("Agent.BaseURL = %q", cfg.Agent.BaseURL)
	}

	t.Setenv("STOCKAI_AGENT_URL", "http://preferred:9000")
	cfg = NewDefaultConfig()
	applyEnvOverrides(cfg)
	if cfg.Agent.BaseURL != "http://preferred:9000" {
		t.Errorf("STOCKAI_AGENT_URL should win, got %q", cfg.Agent.BaseURL)
	}
}

func TestConfig_StorageEnvOverrides(t *testing.T) {
	t.Setenv("SURREALDB_URL", "ws://db:8000/rpc")
	t.Setenv("STOCKAI_STORAGE_USER", "admin")
	t.Setenv("STOCKAI_STORAGE_PASS", "secret")
	t.Setenv("STOCKAI_CREDENTIALS_FILE", "/data/creds.json")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Storage.Address != "ws://db:8000/rpc" {
		t.Errorf("Storage.Address = %q", cfg.Storage.Address)
	}
	if cfg.Storage.Username != "admin" || cfg.Storage.Password != "secret" {
		t.Errorf("Storage credentials = %q/%q", cfg.Storage.Username, cfg.Storage.Password)
	}
	if cfg.Storage.CredentialsFile != "/data/creds.json" {
		t.Errorf("Storage.CredentialsFile = %q", cfg.Storage.CredentialsFile)
	}
}

func TestLoadConfig_TOMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stockai.toml")
	content := `
environment = "production"

[server]
port = 6000

[agent]
base_url = "http://agent.internal:8000/"
timeout = "5s"

[news]
limit = 5

[demo]
email = "demo@example.com"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("STOCKAI_LOG_LEVEL", "debug")
	for _, name := range []string{"PORT", "STOCKAI_PORT", "STOCKAI_ENV", "STOCKAI_AGENT_URL", "PYTHON_AGENT_URL", "STOCKAI_DEMO_EMAIL"} {
		t.Setenv(name, "")
	}

	cfg, err := LoadConfig(path, filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected production environment, got %q", cfg.Environment)
	}
	if cfg.Server.Port != 6000 {
		t.Errorf("Server.Port = %d, want 6000", cfg.Server.Port)
	}
	if cfg.Agent.BaseURL != "http://agent.internal:8000" {
		t.Errorf("Agent.BaseURL should be trimmed, got %q", cfg.Agent.BaseURL)
	}
	if cfg.Agent.GetTimeout() != 5*time.Second {
		t.Errorf("Agent timeout = %v", cfg.Agent.GetTimeout())
	}
	if cfg.News.Limit != 5 {
		t.Errorf("News.Limit = %d, want 5", cfg.News.Limit)
	}
	if len(cfg.News.Feeds) != 2 {
		t.Errorf("feeds not set in file should keep defaults, got %v", cfg.News.Feeds)
	}
	if cfg.Demo.Email != "demo@example.com" {
		t.Errorf("Demo.Email = %q", cfg.Demo.Email)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadConfig_ParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[server\nport ="), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_ValidateRejectsBadPort(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for out-of-range port")
	}
}

func TestConfig_ValidateFillsZeroValues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.News.Limit = 0
	cfg.News.Feeds = nil
	cfg.Demo.Email = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.News.Limit != 20 || len(cfg.News.Feeds) != 2 || cfg.Demo.Email == "" {
		t.Errorf("zero values not defaulted: %+v %+v", cfg.News, cfg.Demo)
	}
}

func TestAgentConfig_GetTimeout(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
	}{
		{"", 0},
		{"0s", 0},
		{"garbage", 0},
		{"-5s", 0},
		{"90s", 90 * time.Second},
	}
	for _, tt := range tests {
		c := AgentConfig{Timeout: tt.timeout}
		if got := c.GetTimeout(); got != tt.want {
			t.Errorf("GetTimeout(%q) = %v, want %v", tt.timeout, got, tt.want)
		}
	}
	if got := NewDefaultConfig().Agent.GetTimeout(); got != 0 {
		t.Errorf("default agent timeout = %v, want none", got)
	}
}

func TestResolveConfigPaths_Explicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("STOCKAI_CONFIG", filepath.Join(dir, "other.toml"))

	got := ResolveConfigPaths(path)
	if len(got) != 1 || got[0] != path {
		t.Errorf("ResolveConfigPaths = %v, want [%s]", got, path)
	}
}

func TestResolveConfigPaths_EnvFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.toml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("STOCKAI_CONFIG", path)

	got := ResolveConfigPaths(filepath.Join(dir, "missing.toml"))
	if len(got) != 1 || got[0] != path {
		t.Errorf("ResolveConfigPaths = %v, want [%s]", got, path)
	}
}
