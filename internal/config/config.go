// File path: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Values resolve in order: YAML
// file, then environment variables, then defaults.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	LLM    LLMConfig    `yaml:"llm"`
	Auth   AuthConfig   `yaml:"auth"`
	CRM    CRMConfig    `yaml:"crm"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

// LLMConfig configures the generation service client.
type LLMConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
}

// AuthConfig carries the session-token secret and the key used to encrypt
// CRM tokens at rest. Both are required for the server to start.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	EncryptionKey string        `yaml:"encryption_key"`
	SessionTTL    time.Duration `yaml:"-"`
	SessionTTLRaw string        `yaml:"session_ttl"`
}

// CRMConfig tunes the HubSpot client.
type CRMConfig struct {
	BaseURL        string  `yaml:"base_url"`
	RequestsPerSec float64 `yaml:"requests_per_sec"`
	PageLimit      int     `yaml:"page_limit"`
}

// Load reads the optional YAML file at path and overlays environment
// variables. An empty path skips the file step.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		data, err := os.ReadFile(filepath.Clean(trimmed))
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("HUBAUDITOR_ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("HUBAUDITOR_DB")); v != "" {
		c.Store.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		c.LLM.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_CHAT_MODEL")); v != "" {
		c.LLM.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); v != "" {
		c.LLM.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("ENCRYPTION_KEY")); v != "" {
		c.Auth.EncryptionKey = v
	}
	if v := strings.TrimSpace(os.Getenv("HUBSPOT_BASE_URL")); v != "" {
		c.CRM.BaseURL = v
	}
}

func (c *Config) applyDefaults() error {
	// Sessions are HMAC-signed; an empty secret would let anyone mint one.
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("auth.jwt_secret is required (set JWT_SECRET)")
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join("data", "hubauditor.db")
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o"
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = 4096
	}
	if c.Auth.SessionTTL <= 0 {
		if raw := strings.TrimSpace(c.Auth.SessionTTLRaw); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				return fmt.Errorf("parse session_ttl: %w", err)
			}
			c.Auth.SessionTTL = parsed
		}
		if c.Auth.SessionTTL <= 0 {
			c.Auth.SessionTTL = 7 * 24 * time.Hour
		}
	}
	if c.CRM.BaseURL == "" {
		c.CRM.BaseURL = "https://api.hubapi.com"
	}
	if c.CRM.RequestsPerSec <= 0 {
		c.CRM.RequestsPerSec = 10
	}
	if c.CRM.PageLimit <= 0 {
		c.CRM.PageLimit = 100
	}
	return nil
}
