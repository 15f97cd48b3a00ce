package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
bot:
  token: "123:abc"
  mode: webhook
  webhook_url: "https://bot.example.com"
  admin_ids: [777, 888]
weather:
  api_key: "owm-key"
broadcast:
  interval_hours: "6"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_FileWithDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("WEATHER_API_KEY", "")
	cfg, err := LoadConfig(writeConfig(t, sampleYAML), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Bot.Token != "123:abc" {
		t.Errorf("token = %q", cfg.Bot.Token)
	}
	if cfg.Bot.Mode != "webhook" {
		t.Errorf("mode = %q", cfg.Bot.Mode)
	}
	if len(cfg.Bot.AdminIDs) != 2 || cfg.Bot.AdminIDs[0] != 777 {
		t.Errorf("admin ids = %v", cfg.Bot.AdminIDs)
	}
	if cfg.Broadcast.IntervalHours != "6" {
		t.Errorf("interval = %q", cfg.Broadcast.IntervalHours)
	}
	// defaults for everything the file omits
	if cfg.HTTP.Port != 3000 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Bot.Workers != 8 {
		t.Errorf("workers = %d", cfg.Bot.Workers)
	}
	if cfg.Weather.BaseURL != "https://api.openweathermap.org" {
		t.Errorf("base url = %q", cfg.Weather.BaseURL)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log defaults = %q/%q", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("WEATHER_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://db.internal:5432/weather")

	cfg, err := LoadConfig(writeConfig(t, sampleYAML), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Bot.Token != "env-token" {
		t.Errorf("env token should win, got %q", cfg.Bot.Token)
	}
	if cfg.Weather.APIKey != "env-key" {
		t.Errorf("env api key should win, got %q", cfg.Weather.APIKey)
	}
	if cfg.Database.URL != "postgres://db.internal:5432/weather" {
		t.Errorf("env db url should win, got %q", cfg.Database.URL)
	}
}

func TestLoadConfig_MissingFileEnvOnly(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("WEATHER_API_KEY", "env-key")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), true)
	if err != nil {
		t.Fatalf("missing file with env values must not fail: %v", err)
	}
	if !cfg.Runtime.Dev {
		t.Error("dev flag not carried into runtime config")
	}
	if cfg.Bot.Mode != "polling" {
		t.Errorf("default mode = %q", cfg.Bot.Mode)
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"missing token", "weather:\n  api_key: k\n"},
		{"missing api key", "bot:\n  token: t\n"},
		{"webhook without url", "bot:\n  token: t\n  mode: webhook\nweather:\n  api_key: k\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_BOT_TOKEN", "")
			t.Setenv("WEATHER_API_KEY", "")
			if _, err := LoadConfig(writeConfig(t, tc.yaml), false); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
