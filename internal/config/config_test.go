//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setRequiredEnv sets the minimum environment for a valid config.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017/curator")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("GROQ_MODEL", "llama-3.1-8b-instant")
	t.Setenv("WEBHOOK_URL", "")
	t.Setenv("BOT_MODE", "")
	t.Setenv("AI_PROVIDER", "")
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), false)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Bot.Mode != ModePolling {
		t.Errorf("expected polling mode without WEBHOOK_URL, got %q", cfg.Bot.Mode)
	}
	if cfg.Bot.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Bot.Port)
	}
	if cfg.Bot.StickerID != DefaultStickerID {
		t.Errorf("expected default sticker id, got %q", cfg.Bot.StickerID)
	}
	if cfg.AI.Provider != ProviderOpenAI || cfg.AI.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("unexpected AI defaults: %+v", cfg.AI)
	}
	if cfg.Database.ProbeInterval != 30*time.Second {
		t.Errorf("expected default probe interval 30s, got %v", cfg.Database.ProbeInterval)
	}
	if cfg.Redis.TTL != 24*time.Hour {
		t.Errorf("expected default redis ttl 24h, got %v", cfg.Redis.TTL)
	}
}

func TestLoadConfig_WebhookURLSelectsWebhookMode(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WEBHOOK_URL", "https://bot.example.com/")
	t.Setenv("PORT", "8080")

	cfg, err := LoadConfig("", false)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Bot.Mode != ModeWebhook {
		t.Errorf("expected webhook mode, got %q", cfg.Bot.Mode)
	}
	if got, want := cfg.WebhookEndpoint(), "https://bot.example.com/telegram/webhook"; got != want {
		t.Errorf("wanted endpoint %q, got %q", want, got)
	}
	if cfg.Bot.Port != 8080 {
		t.Errorf("expected port from env, got %d", cfg.Bot.Port)
	}
}

func TestLoadConfig_YAMLOverlaidByEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GROQ_MODEL", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
bot:
  workers: 3
  language: en
ai:
  model: from-yaml
app:
  timezone: Europe/Berlin
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Bot.Workers != 3 {
		t.Errorf("expected workers from yaml, got %d", cfg.Bot.Workers)
	}
	if cfg.AI.Model != "from-env" {
		t.Errorf("expected env to override yaml, got %q", cfg.AI.Model)
	}
	if !cfg.Runtime.Dev {
		t.Error("expected dev flag to be carried")
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Europe/Berlin" {
		t.Errorf("unexpected location %v, err %v", loc, err)
	}
}

func TestLoadConfig_MongoURIFallback(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MONGO_URI", "mongodb://db:27017")

	cfg, err := LoadConfig("", false)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Database.URL != "mongodb://db:27017" {
		t.Errorf("expected MONGO_URI to be used, got %q", cfg.Database.URL)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{
			Bot:      BotConfig{Token: "t", Mode: ModePolling},
			Database: DatabaseConfig{URL: "mongodb://x"},
			AI:       AIConfig{Provider: ProviderOpenAI, APIKey: "k", Model: "m"},
		}
		return c
	}

	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing token", func(c *Config) { c.Bot.Token = "" }, "bot.token"},
		{"missing database", func(c *Config) { c.Database.URL = "" }, "database.url"},
		{"missing api key", func(c *Config) { c.AI.APIKey = "" }, "ai.api_key"},
		{"missing model", func(c *Config) { c.AI.Model = "" }, "ai.model"},
		{"webhook without url", func(c *Config) { c.Bot.Mode = ModeWebhook }, "webhook_url"},
		{"unknown mode", func(c *Config) { c.Bot.Mode = "smoke-signals" }, "bot.mode"},
		{"gemini without key", func(c *Config) { c.AI.Provider = ProviderGemini }, "gemini_key"},
		{"bad timezone", func(c *Config) { c.App.Timezone = "Mars/Olympus" }, "app.timezone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			err := c.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
