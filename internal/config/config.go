package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token      string  `yaml:"token"`
	Mode       string  `yaml:"mode"`        // polling | webhook
	WebhookURL string  `yaml:"webhook_url"` // base URL, path /bot<token> is appended
	Workers    int     `yaml:"workers"`     // update workers
	AdminIDs   []int64 `yaml:"admin_ids"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // trace|debug|info|warn|error
	Format string `yaml:"format"` // json|console
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string `yaml:"url"` // empty disables rate limiting
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type WeatherConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type BroadcastConfig struct {
	// IntervalHours is kept as a string: it is seeded verbatim into the
	// settings table next to operator-written values.
	IntervalHours string `yaml:"interval_hours"`
}

type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	Log       LogConfig       `yaml:"log"`
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Weather   WeatherConfig   `yaml:"weather"`
	Broadcast BroadcastConfig `yaml:"broadcast"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file at path, applies environment overrides for
// secrets, fills defaults and validates required fields. A missing file is not
// an error as long as the required values arrive via environment.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// env-only deployment
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnvOverrides(&cfg)

	// defaults
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 3000
	}
	if cfg.Database.URL == "" {
		cfg.Database.URL = "postgres://localhost:5432/weatherbot"
	}
	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = "https://api.openweathermap.org"
	}
	if cfg.Broadcast.IntervalHours == "" {
		cfg.Broadcast.IntervalHours = "12"
	}

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required")
	}
	if cfg.Weather.APIKey == "" {
		return nil, errors.New("weather.api_key is required")
	}
	if cfg.Bot.Mode == "webhook" && cfg.Bot.WebhookURL == "" {
		return nil, errors.New("bot.webhook_url is required in webhook mode")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
}
