// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	// WebhookPath is where Telegram delivers updates in webhook mode.
	WebhookPath = "/telegram/webhook"

	DefaultStickerID = "CAACAgIAAxkBAAMUaSyLiRsrspRIkG1QS3gQYCit4ToAAl4SAALsmSlJfO_ZpUf3ZDs2BA"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token      string `yaml:"token" env:"BOT_TOKEN"`
	Mode       string `yaml:"mode" env:"BOT_MODE"` // polling | webhook
	WebhookURL string `yaml:"webhook_url" env:"WEBHOOK_URL"`
	Port       int    `yaml:"port" env:"PORT"`
	Workers    int    `yaml:"workers" env:"BOT_WORKERS"` // update workers
	StickerID  string `yaml:"sticker_id" env:"STICKER_ID"`
	Language   string `yaml:"language" env:"BOT_LANGUAGE"`
}

type LogConfig struct {
	Level    string `yaml:"level" env:"LOG_LEVEL"`   // trace|debug|info|warn|error
	Format   string `yaml:"format" env:"LOG_FORMAT"` // json|console
	Sampling bool   `yaml:"sampling" env:"LOG_SAMPLING"`
}

type DatabaseConfig struct {
	URL            string        `yaml:"url" env:"DATABASE_URL"`
	Name           string        `yaml:"name" env:"DATABASE_NAME"` // mongo database when the URL has none
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"DATABASE_CONNECT_TIMEOUT"`
	MaxConns       int32         `yaml:"max_conns" env:"DATABASE_MAX_CONNS"`
	ProbeInterval  time.Duration `yaml:"probe_interval" env:"DATABASE_PROBE_INTERVAL"` // store_up gauge refresh
}

type RedisConfig struct {
	URL      string        `yaml:"url" env:"REDIS_URL"` // empty disables update de-duplication
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB"`
	TTL      time.Duration `yaml:"ttl" env:"REDIS_TTL"`
}

type AIConfig struct {
	Provider        string `yaml:"provider" env:"AI_PROVIDER"` // openai | gemini
	APIKey          string `yaml:"api_key" env:"GROQ_API_KEY"`
	BaseURL         string `yaml:"base_url" env:"AI_BASE_URL"`
	Model           string `yaml:"model" env:"GROQ_MODEL"`
	GeminiKey       string `yaml:"gemini_key" env:"GEMINI_API_KEY"`
	GeminiURL       string `yaml:"gemini_url" env:"GEMINI_BASE_URL"`
	MaxOutputTokens int    `yaml:"max_output_tokens" env:"AI_MAX_OUTPUT_TOKENS"`
}

type AppConfig struct {
	Timezone string `yaml:"timezone" env:"TIMEZONE"` // IANA name; empty means process local time
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	AI       AIConfig       `yaml:"ai"`
	App      AppConfig      `yaml:"app"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig builds the configuration from, in increasing priority:
// built-in defaults, the YAML file at path (skipped when it does not exist),
// a local .env file and the process environment.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// env-only deployment
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// .env is for local runs only; a real environment wins.
	if os.Getenv("BOT_TOKEN") == "" {
		_ = godotenv.Load()
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	// MONGO_URI is accepted as a legacy name.
	if cfg.Database.URL == "" {
		cfg.Database.URL = strings.TrimSpace(os.Getenv("MONGO_URI"))
	}

	cfg.Runtime.Dev = dev
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.Port <= 0 {
		cfg.Bot.Port = 3000
	}
	if cfg.Bot.StickerID == "" {
		cfg.Bot.StickerID = DefaultStickerID
	}
	if cfg.Bot.Language == "" {
		cfg.Bot.Language = "en"
	}
	cfg.Bot.WebhookURL = strings.TrimRight(strings.TrimSpace(cfg.Bot.WebhookURL), "/")
	cfg.Bot.Mode = strings.ToLower(strings.TrimSpace(cfg.Bot.Mode))
	if cfg.Bot.Mode == "" {
		if cfg.Bot.WebhookURL != "" {
			cfg.Bot.Mode = ModeWebhook
		} else {
			cfg.Bot.Mode = ModePolling
		}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "post_curator"
	}
	if cfg.Database.ConnectTimeout <= 0 {
		cfg.Database.ConnectTimeout = 10 * time.Second
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Database.ProbeInterval <= 0 {
		cfg.Database.ProbeInterval = 30 * time.Second
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)
	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(cfg.AI.Provider))
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = ProviderOpenAI
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.AI.Provider == ProviderGemini && cfg.AI.GeminiKey == "" {
		cfg.AI.GeminiKey = cfg.AI.APIKey
	}
}

// Validate reports the first missing or inconsistent setting.
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return errors.New("bot.token (BOT_TOKEN) is required")
	}
	switch c.Bot.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.Bot.WebhookURL == "" {
			return errors.New("bot.webhook_url (WEBHOOK_URL) is required in webhook mode")
		}
	default:
		return fmt.Errorf("bot.mode must be %q or %q, got %q", ModePolling, ModeWebhook, c.Bot.Mode)
	}
	if c.Database.URL == "" {
		return errors.New("database.url (DATABASE_URL or MONGO_URI) is required")
	}
	switch c.AI.Provider {
	case ProviderOpenAI:
		if c.AI.APIKey == "" {
			return errors.New("ai.api_key (GROQ_API_KEY) is required")
		}
	case ProviderGemini:
		if c.AI.GeminiKey == "" {
			return errors.New("ai.gemini_key (GEMINI_API_KEY) is required for the gemini provider")
		}
	default:
		return fmt.Errorf("ai.provider must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.AI.Provider)
	}
	if c.AI.Model == "" {
		return errors.New("ai.model (GROQ_MODEL) is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("app.timezone: %w", err)
	}
	return nil
}

// Location resolves the time zone used for the daily event window.
func (c *Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.App.Timezone) == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.App.Timezone)
}

// WebhookEndpoint is the public URL registered with Telegram.
func (c *Config) WebhookEndpoint() string {
	return c.Bot.WebhookURL + WebhookPath
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return 24 * time.Hour
	}
	return d
}
