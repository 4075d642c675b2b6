package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terraincognita07/milla/internal/availability"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "milla.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MinNights != availability.DefaultMinNights {
		t.Fatalf("expected default min nights, got %d", cfg.MinNights)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Blackouts) != 1 || reloaded.Blackouts[0].From != "2026-05-01" {
		t.Fatalf("expected default blackout to survive reload, got %+v", reloaded.Blackouts)
	}
}

func TestLoadNormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "milla.yaml")
	content := "min_nights: 7\nblackouts:\n  - day: \"2026-12-24\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MinNights != 7 {
		t.Fatalf("expected min nights 7, got %d", cfg.MinNights)
	}
	if cfg.Port != DefaultPort || cfg.Notifier.Cron != DefaultNotifierCron || cfg.Notifier.MaxAttempts != 5 {
		t.Fatalf("expected defaults to be filled, got %+v", cfg)
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "milla.yaml")
	if err := os.WriteFile(path, []byte("min_nights: [oops"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveNeverWritesSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "milla.yaml")
	cfg := DefaultConfig()
	cfg.SecretKey = "0123456789abcdef0123456789abcdef"
	cfg.Mail.Password = "smtp-secret"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "smtp-secret") || strings.Contains(string(data), cfg.SecretKey) {
		t.Fatalf("expected secrets to stay out of the file:\n%s", data)
	}
}

func TestApplyEnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TZ", "UTC")
	t.Setenv("DEFAULT_LANGUAGE", "EN")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USER", "host@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("MAIL_TO", "owner@example.com")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Port != "9090" || cfg.Timezone != "UTC" || cfg.DefaultLanguage != "en" {
		t.Fatalf("unexpected server settings: %+v", cfg)
	}
	if cfg.Mail.Address() != "smtp.example.com:2525" || cfg.Mail.From != "host@example.com" || !cfg.Mail.Enabled() {
		t.Fatalf("unexpected mail settings: %+v", cfg.Mail)
	}
	if !cfg.CookieSecure {
		t.Fatal("expected secure cookies")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr error
	}{
		{name: "port zero", mutate: func(cfg *Config) { cfg.Port = "0" }, wantErr: ErrInvalidPort},
		{name: "port too high", mutate: func(cfg *Config) { cfg.Port = "70000" }, wantErr: ErrInvalidPort},
		{name: "port not a number", mutate: func(cfg *Config) { cfg.Port = "http" }, wantErr: ErrInvalidPort},
		{name: "language", mutate: func(cfg *Config) { cfg.DefaultLanguage = "fr" }, wantErr: ErrInvalidLanguage},
		{name: "min nights", mutate: func(cfg *Config) { cfg.MinNights = -1 }, wantErr: ErrInvalidMinStay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Timezone = "Mars/Olympus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid timezone to fail")
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "milla.yaml")
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "8181")

	cfg, usedPath, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("load from env: %v", err)
	}
	if usedPath != path || cfg.Port != "8181" {
		t.Fatalf("unexpected result: %q %+v", usedPath, cfg)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := &Config{Port: "9000", MinNights: 3, Notifier: NotifierConfig{Cron: "*/5 * * * *", MaxAttempts: 2}}
	cfg.Normalize()
	if cfg.Port != "9000" || cfg.MinNights != 3 || cfg.Notifier.Cron != "*/5 * * * *" || cfg.Notifier.MaxAttempts != 2 {
		t.Fatalf("expected explicit values to survive, got %+v", cfg)
	}
	if cfg.Timezone != DefaultTimezone {
		t.Fatalf("expected default timezone, got %q", cfg.Timezone)
	}
	if _, err := cfg.Location(); err != nil {
		t.Fatalf("expected default timezone to load: %v", err)
	}
}
