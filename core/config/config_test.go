package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode default = %q", cfg.Telegram.RunMode)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Fatalf("storage driver default = %q", cfg.Storage.Driver)
	}
	if cfg.Generator.MinLength != 12 || cfg.Generator.MaxLength != 16 {
		t.Fatalf("generator defaults = %d..%d", cfg.Generator.MinLength, cfg.Generator.MaxLength)
	}
}

func TestNormalizePollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "Polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("alias not accepted: %q", cfg.Telegram.RunMode)
	}
}

func TestNormalizeErrors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"missing token", func(c *Config) { c.Telegram.Token = "" }, "token"},
		{"bad run mode", func(c *Config) { c.Telegram.RunMode = "carrier-pigeon" }, "run_mode"},
		{"webhook without url", func(c *Config) { c.Telegram.RunMode = RunModeWebhook }, "webhook.url"},
		{"bad exclude", func(c *Config) { c.RateLimit.ExcludeUpdates = []string{"sticker"} }, "exclude_updates"},
		{"bad driver", func(c *Config) { c.Storage.Driver = "sqlite" }, "storage.driver"},
		{"postgres without host", func(c *Config) { c.Storage.Driver = StoragePostgres }, "database.host"},
		{"max below min", func(c *Config) { c.Generator.MinLength = 16; c.Generator.MaxLength = 12 }, "max_length"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := Normalize(cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}
