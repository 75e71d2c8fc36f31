// Package config loads timeliner configuration from a JSON file or
// from TIMELINER_-prefixed environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the top-level timeliner configuration.
type Config struct {
	Server    ServerConfig              `json:"server"`
	Storage   StorageConfig             `json:"storage"`
	Providers map[string]ProviderConfig `json:"providers"`
	Pager     PagerConfig               `json:"pager"`
	Audit     AuditConfig               `json:"audit"`
}

// ServerConfig holds REST API server settings.
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	Key  string `json:"api_key"`
}

// StorageConfig holds incident state storage settings.
type StorageConfig struct {
	StateDir      string `json:"state_dir"`
	RetentionDays int    `json:"retention_days"`
	SweepSchedule string `json:"sweep_schedule"`
}

// ProviderConfig holds LLM provider settings.
type ProviderConfig struct {
	Type    string `json:"type,omitempty"` // "openai" (default) or "anthropic"
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model"`
}

// PagerConfig holds callout delivery settings. Both backends are
// optional; callouts still land on the timeline without them.
type PagerConfig struct {
	Slack    *SlackConfig    `json:"slack,omitempty"`
	Telegram *TelegramConfig `json:"telegram,omitempty"`
}

// SlackConfig holds Slack paging settings.
type SlackConfig struct {
	BotToken string `json:"bot_token"`
	Channel  string `json:"channel"`
}

// TelegramConfig holds Telegram paging settings.
type TelegramConfig struct {
	Token  string `json:"token"`
	ChatID int64  `json:"chat_id"`
}

// AuditConfig holds audit log settings.
type AuditConfig struct {
	Path string `json:"path"`
}

// Defaults applied by Load and LoadFromEnv.
const (
	DefaultStateDir      = "incident-states"
	DefaultRetentionDays = 15
	DefaultSweepSchedule = "@every 6h"
)

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv builds a config from environment variables with the
// TIMELINER_ prefix.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getenv("TIMELINER_HOST", "0.0.0.0"),
			Port: getenvInt("TIMELINER_PORT", 8080),
			Key:  os.Getenv("TIMELINER_API_KEY"),
		},
		Storage: StorageConfig{
			StateDir:      getenv("TIMELINER_STATE_DIR", DefaultStateDir),
			RetentionDays: getenvInt("TIMELINER_RETENTION_DAYS", DefaultRetentionDays),
			SweepSchedule: getenv("TIMELINER_SWEEP_SCHEDULE", DefaultSweepSchedule),
		},
		Providers: make(map[string]ProviderConfig),
		Audit: AuditConfig{
			Path: os.Getenv("TIMELINER_AUDIT_PATH"),
		},
	}

	if apiKey := os.Getenv("TIMELINER_ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.Providers["default"] = ProviderConfig{
			Type:   "anthropic",
			APIKey: apiKey,
			Model:  getenv("TIMELINER_MODEL", "claude-sonnet-4-20250514"),
		}
	} else if apiKey := os.Getenv("TIMELINER_OPENAI_API_KEY"); apiKey != "" {
		cfg.Providers["default"] = ProviderConfig{
			Type:    "openai",
			APIKey:  apiKey,
			BaseURL: os.Getenv("TIMELINER_OPENAI_BASE_URL"),
			Model:   getenv("TIMELINER_MODEL", "gpt-4o"),
		}
	}

	if token := os.Getenv("TIMELINER_SLACK_BOT_TOKEN"); token != "" {
		cfg.Pager.Slack = &SlackConfig{
			BotToken: token,
			Channel:  os.Getenv("TIMELINER_SLACK_CHANNEL"),
		}
	}
	if token := os.Getenv("TIMELINER_TELEGRAM_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(getenv("TIMELINER_TELEGRAM_CHAT_ID", "0"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: TIMELINER_TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Pager.Telegram = &TelegramConfig{Token: token, ChatID: chatID}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Storage.StateDir == "" {
		c.Storage.StateDir = DefaultStateDir
	}
	if c.Storage.RetentionDays == 0 {
		c.Storage.RetentionDays = DefaultRetentionDays
	}
	if c.Storage.SweepSchedule == "" {
		c.Storage.SweepSchedule = DefaultSweepSchedule
	}
}

// Validate checks for required fields.
func (c *Config) Validate() error {
	var errs []string

	if c.Storage.StateDir == "" {
		errs = append(errs, "storage.state_dir is required")
	}
	if c.Storage.RetentionDays < 0 {
		errs = append(errs, "storage.retention_days must not be negative")
	}

	for name, p := range c.Providers {
		if p.APIKey == "" {
			errs = append(errs, fmt.Sprintf("providers.%s.api_key is required", name))
		}
		if p.Model == "" {
			errs = append(errs, fmt.Sprintf("providers.%s.model is required", name))
		}
		if p.Type != "" && p.Type != "openai" && p.Type != "anthropic" {
			errs = append(errs, fmt.Sprintf("providers.%s.type must be openai or anthropic", name))
		}
	}

	if c.Pager.Slack != nil {
		if c.Pager.Slack.BotToken == "" {
			errs = append(errs, "pager.slack.bot_token is required")
		}
		if c.Pager.Slack.Channel == "" {
			errs = append(errs, "pager.slack.channel is required")
		}
	}
	if c.Pager.Telegram != nil {
		if c.Pager.Telegram.Token == "" {
			errs = append(errs, "pager.telegram.token is required")
		}
		if c.Pager.Telegram.ChatID == 0 {
			errs = append(errs, "pager.telegram.chat_id is required")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
