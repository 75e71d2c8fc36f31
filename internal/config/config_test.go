package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"server": {"host": "127.0.0.1", "port": 9090, "api_key": "secret"},
		"storage": {"state_dir": "/var/lib/timeliner", "retention_days": 30},
		"providers": {
			"default": {"type": "anthropic", "api_key": "sk-test", "model": "claude-sonnet-4-20250514"}
		},
		"pager": {"slack": {"bot_token": "xoxb-test", "channel": "#incidents"}},
		"audit": {"path": "/var/lib/timeliner/audit.db"}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Storage.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d", cfg.Storage.RetentionDays)
	}
	// Unset fields get defaults.
	if cfg.Storage.SweepSchedule != DefaultSweepSchedule {
		t.Errorf("SweepSchedule = %q", cfg.Storage.SweepSchedule)
	}
	if cfg.Pager.Slack == nil || cfg.Pager.Slack.Channel != "#incidents" {
		t.Errorf("Slack = %+v", cfg.Pager.Slack)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.StateDir != DefaultStateDir {
		t.Errorf("StateDir = %q", cfg.Storage.StateDir)
	}
	if cfg.Storage.RetentionDays != DefaultRetentionDays {
		t.Errorf("RetentionDays = %d", cfg.Storage.RetentionDays)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"provider missing api key", `{"providers": {"default": {"model": "gpt-4o"}}}`},
		{"provider missing model", `{"providers": {"default": {"api_key": "k"}}}`},
		{"provider bad type", `{"providers": {"default": {"type": "gemini", "api_key": "k", "model": "m"}}}`},
		{"slack missing channel", `{"pager": {"slack": {"bot_token": "xoxb"}}}`},
		{"telegram missing chat", `{"pager": {"telegram": {"token": "t"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TIMELINER_HOST", "10.0.0.1")
	t.Setenv("TIMELINER_PORT", "9999")
	t.Setenv("TIMELINER_STATE_DIR", "/tmp/states")
	t.Setenv("TIMELINER_ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("TIMELINER_SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("TIMELINER_SLACK_CHANNEL", "#ops")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Server.Host != "10.0.0.1" || cfg.Server.Port != 9999 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Storage.StateDir != "/tmp/states" {
		t.Errorf("StateDir = %q", cfg.Storage.StateDir)
	}
	p, ok := cfg.Providers["default"]
	if !ok || p.Type != "anthropic" || p.APIKey != "sk-test" {
		t.Errorf("Providers = %+v", cfg.Providers)
	}
	if cfg.Pager.Slack == nil || cfg.Pager.Slack.Channel != "#ops" {
		t.Errorf("Slack = %+v", cfg.Pager.Slack)
	}
}

func TestLoadFromEnvNoProvider(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	// Assist flows are optional; no provider configured is valid.
	if len(cfg.Providers) != 0 {
		t.Errorf("Providers = %+v", cfg.Providers)
	}
}
