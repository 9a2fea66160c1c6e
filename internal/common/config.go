// Package common provides shared utilities for StockAI
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// Default upstream news feeds.
var DefaultNewsFeeds = []string{
	"https://finance.yahoo.com/news/rssindex",
	"http://feeds.marketwatch.com/marketwatch/topstories/",
}

// Config holds all configuration for StockAI
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Agent       AgentConfig   `toml:"agent"`
	News        NewsConfig    `toml:"news"`
	Demo        DemoConfig    `toml:"demo"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	StaticDir string `toml:"static_dir"` // Pre-built frontend bundle, served at / when present
}

// StorageConfig holds the primary store connection and the local credential file.
type StorageConfig struct {
	Address         string `toml:"address"`
	Namespace       string `toml:"namespace"`
	Database        string `toml:"database"`
	Username        string `toml:"username"`
	Password        string `toml:"password"`
	CredentialsFile string `toml:"credentials_file"`
}

// AgentConfig holds the external analysis agent configuration
type AgentConfig struct {
	BaseURL   string `toml:"base_url"`
	Timeout   string `toml:"timeout"` // "0" or empty means no timeout
	RateLimit int    `toml:"rate_limit"` // requests per second, 0 disables limiting
}

// GetTimeout parses and returns the timeout duration. Zero means agent calls
// are not bounded.
func (c *AgentConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// NewsConfig holds news aggregation configuration
type NewsConfig struct {
	Feeds   []string `toml:"feeds"`
	Limit   int      `toml:"limit"`
	Timeout string   `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *NewsConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// DemoConfig identifies the single demo user.
type DemoConfig struct {
	Email string `toml:"email"`
	Name  string `toml:"name"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`  // "console" or "json"
	Outputs    []string `toml:"outputs"` // "console", "file"
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Storage: StorageConfig{
			Address:         "ws://localhost:8001/rpc",
			Namespace:       "stockai",
			Database:        "stockai",
			Username:        "root",
			Password:        "root",
			CredentialsFile: "credentials.json",
		},
		Agent: AgentConfig{
			BaseURL:   "http://localhost:8000",
			Timeout:   "0s",
			RateLimit: 0,
		},
		News: NewsConfig{
			Feeds:   append([]string(nil), DefaultNewsFeeds...),
			Limit:   20,
			Timeout: "15s",
		},
		Demo: DemoConfig{
			Email: models.DemoEmail,
			Name:  "John Doe",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			Outputs:    []string{"console"},
			FilePath:   "./logs/stockai.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKAI_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("STOCKAI_HOST"); host != "" {
		config.Server.Host = host
	}

	// PORT is honoured for platforms that inject it; STOCKAI_PORT wins.
	for _, name := range []string{"PORT", "STOCKAI_PORT"} {
		if port := os.Getenv(name); port != "" {
			if p, err := strconv.Atoi(port); err == nil {
				config.Server.Port = p
			}
		}
	}

	if dir := os.Getenv("STOCKAI_STATIC_DIR"); dir != "" {
		config.Server.StaticDir = dir
	}

	if url := firstEnv("STOCKAI_AGENT_URL", "PYTHON_AGENT_URL"); url != "" {
		config.Agent.BaseURL = url
	}

	if addr := firstEnv("STOCKAI_STORAGE_ADDRESS", "SURREALDB_URL"); addr != "" {
		config.Storage.Address = addr
	}
	if v := os.Getenv("STOCKAI_STORAGE_USER"); v != "" {
		config.Storage.Username = v
	}
	if v := os.Getenv("STOCKAI_STORAGE_PASS"); v != "" {
		config.Storage.Password = v
	}
	if v := os.Getenv("STOCKAI_CREDENTIALS_FILE"); v != "" {
		config.Storage.CredentialsFile = v
	}

	if level := os.Getenv("STOCKAI_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if email := os.Getenv("STOCKAI_DEMO_EMAIL"); email != "" {
		config.Demo.Email = email
	}
}

// firstEnv returns the value of the first non-empty environment variable.
func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Agent.BaseURL) == "" {
		return fmt.Errorf("agent base_url must not be empty")
	}
	c.Agent.BaseURL = strings.TrimRight(c.Agent.BaseURL, "/")
	if c.Storage.CredentialsFile == "" {
		c.Storage.CredentialsFile = "credentials.json"
	}
	if c.News.Limit <= 0 {
		c.News.Limit = 20
	}
	if len(c.News.Feeds) == 0 {
		c.News.Feeds = append([]string(nil), DefaultNewsFeeds...)
	}
	if c.Demo.Email == "" {
		c.Demo.Email = models.DemoEmail
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ResolveConfigPaths returns the config files to load, in priority order:
// explicit argument, STOCKAI_CONFIG, stockai.toml beside the binary, then
// config/stockai.toml in the working directory. Only the first that exists is used.
func ResolveConfigPaths(explicit string) []string {
	candidates := []string{explicit, os.Getenv("STOCKAI_CONFIG")}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "stockai.toml"))
	}
	candidates = append(candidates, filepath.Join("config", "stockai.toml"))

	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return []string{p}
		}
	}
	return nil
}
