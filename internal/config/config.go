package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/terraincognita07/milla/internal/availability"
)

const (
	DefaultPath         = "data/milla.yaml"
	DefaultPort         = "8080"
	DefaultTimezone     = "Europe/Berlin"
	DefaultLanguage     = "de"
	DefaultNotifierCron = "@every 1m"
	DefaultSMTPPort     = 587
)

var (
	ErrEmptyPath       = errors.New("config path is empty")
	ErrNilConfig       = errors.New("config is nil")
	ErrInvalidPort     = errors.New("invalid port")
	ErrInvalidLanguage = errors.New("unsupported language")
	ErrInvalidMinStay  = errors.New("min_nights must be at least 1")
)

var supportedLanguages = map[string]bool{"de": true, "en": true}

// BlackoutEntry is one closed span in ISO dates. Day is shorthand for a
// span of a single day.
type BlackoutEntry struct {
	From string `yaml:"from,omitempty"`
	To   string `yaml:"to,omitempty"`
	Day  string `yaml:"day,omitempty"`
	Note string `yaml:"note,omitempty"`
}

// RecurringBlackout closes Days consecutive days at every occurrence of an
// RRULE anchored at Start.
type RecurringBlackout struct {
	Rule  string `yaml:"rrule"`
	Start string `yaml:"start"`
	Days  int    `yaml:"days"`
	Note  string `yaml:"note,omitempty"`
}

type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"-"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// Enabled reports whether inquiries can be delivered at all.
func (m MailConfig) Enabled() bool {
	return strings.TrimSpace(m.Host) != "" && strings.TrimSpace(m.To) != ""
}

func (m MailConfig) Address() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

type NotifierConfig struct {
	Cron        string `yaml:"cron"`
	MaxAttempts int    `yaml:"max_attempts"`
}

type AdminConfig struct {
	PasswordHash string `yaml:"password_hash"`
}

type Config struct {
	Port            string `yaml:"port"`
	Timezone        string `yaml:"timezone"`
	DBPath          string `yaml:"db_path"`
	DefaultLanguage string `yaml:"default_language"`
	CookieSecure    bool   `yaml:"cookie_secure"`
	// SecretKey is only ever read from the environment.
	SecretKey   string   `yaml:"-"`
	CORSOrigins []string `yaml:"cors_origins"`

	MinNights          int                 `yaml:"min_nights"`
	Blackouts          []BlackoutEntry     `yaml:"blackouts"`
	Booked             []BlackoutEntry     `yaml:"booked"`
	RecurringBlackouts []RecurringBlackout `yaml:"recurring_blackouts"`
	ICSFiles           []string            `yaml:"ics_files"`

	Mail     MailConfig     `yaml:"mail"`
	Notifier NotifierConfig `yaml:"notifier"`
	Admin    AdminConfig    `yaml:"admin"`
}

func DefaultConfig() *Config {
	return &Config{
		Port:            DefaultPort,
		Timezone:        DefaultTimezone,
		DBPath:          filepath.Join("data", "milla.db"),
		DefaultLanguage: DefaultLanguage,
		CORSOrigins:     []string{},
		MinNights:       availability.DefaultMinNights,
		Blackouts: []BlackoutEntry{
			{From: "2026-05-01", To: "2026-05-14", Note: "renovation"},
		},
		Booked:             []BlackoutEntry{},
		RecurringBlackouts: []RecurringBlackout{},
		ICSFiles:           []string{},
		Mail: MailConfig{
			Port: DefaultSMTPPort,
		},
		Notifier: NotifierConfig{
			Cron:        DefaultNotifierCron,
			MaxAttempts: 5,
		},
	}
}

// Normalize fills zero values with defaults so partial files still load.
func (c *Config) Normalize() {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.Port) == "" {
		c.Port = defaults.Port
	}
	if strings.TrimSpace(c.Timezone) == "" {
		c.Timezone = defaults.Timezone
	}
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = defaults.DBPath
	}
	c.DefaultLanguage = strings.ToLower(strings.TrimSpace(c.DefaultLanguage))
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = defaults.DefaultLanguage
	}
	if c.MinNights == 0 {
		c.MinNights = defaults.MinNights
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = defaults.Mail.Port
	}
	if strings.TrimSpace(c.Notifier.Cron) == "" {
		c.Notifier.Cron = defaults.Notifier.Cron
	}
	if c.Notifier.MaxAttempts <= 0 {
		c.Notifier.MaxAttempts = defaults.Notifier.MaxAttempts
	}
	if c.CORSOrigins == nil {
		c.CORSOrigins = []string{}
	}
	if c.Blackouts == nil {
		c.Blackouts = []BlackoutEntry{}
	}
	if c.Booked == nil {
		c.Booked = []BlackoutEntry{}
	}
	if c.RecurringBlackouts == nil {
		c.RecurringBlackouts = []RecurringBlackout{}
	}
	if c.ICSFiles == nil {
		c.ICSFiles = []string{}
	}
}

// Load reads the YAML file at path. A missing file is created with the
// defaults (0600) and the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg atomically through a temp file in the same directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		return ErrEmptyPath
	}
	if cfg == nil {
		return ErrNilConfig
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".milla-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ApplyEnv lets environment variables override the file.
func (c *Config) ApplyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Timezone = getEnv("TZ", c.Timezone)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.DefaultLanguage = strings.ToLower(getEnv("DEFAULT_LANGUAGE", c.DefaultLanguage))
	c.SecretKey = getEnv("SECRET_KEY", c.SecretKey)
	c.Admin.PasswordHash = getEnv("ADMIN_PASSWORD_HASH", c.Admin.PasswordHash)

	c.Mail.Host = getEnv("SMTP_HOST", c.Mail.Host)
	if port, err := strconv.Atoi(getEnv("SMTP_PORT", "")); err == nil {
		c.Mail.Port = port
	}
	c.Mail.Username = getEnv("SMTP_USER", c.Mail.Username)
	c.Mail.Password = getEnv("SMTP_PASS", c.Mail.Password)
	c.Mail.To = getEnv("MAIL_TO", c.Mail.To)
	if c.Mail.From == "" {
		c.Mail.From = c.Mail.Username
	}

	if raw := getEnv("COOKIE_SECURE", ""); raw != "" {
		if secure, err := strconv.ParseBool(raw); err == nil {
			c.CookieSecure = secure
		}
	}
	if raw := getEnv("CORS_ORIGINS", ""); raw != "" {
		c.CORSOrigins = splitList(raw)
	}
}

// Validate rejects settings the server cannot start with. Blackout
// tables are validated when they are built.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidPort, c.Port)
	}
	if !supportedLanguages[c.DefaultLanguage] {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, c.DefaultLanguage)
	}
	if c.MinNights < 1 {
		return ErrInvalidMinStay
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Mail.Port < 1 || c.Mail.Port > 65535 {
		return fmt.Errorf("%w: smtp port %d", ErrInvalidPort, c.Mail.Port)
	}
	return nil
}

func (c *Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return location, nil
}

// LoadFromEnv is the startup path: file at CONFIG_PATH, env overrides,
// validation.
func LoadFromEnv() (*Config, string, error) {
	path := getEnv("CONFIG_PATH", DefaultPath)
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
