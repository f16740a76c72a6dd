// Package config loads the server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmynk/familyfinance/internal/currency"
)

// Config holds all configuration for the server.
type Config struct {
	Port       int    `mapstructure:"PORT"`
	DBPath     string `mapstructure:"DB_PATH"`
	StaticPath string `mapstructure:"STATIC_PATH"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`

	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`

	// FamilyMembers and JuntaCollectors are comma-separated in the environment.
	FamilyMembers   []string `mapstructure:"-"`
	JuntaCollectors []string `mapstructure:"-"`

	DefaultCurrency string `mapstructure:"DEFAULT_CURRENCY"`
	DisplayLocale   string `mapstructure:"DISPLAY_LOCALE"`

	AdvisorBaseURL string `mapstructure:"ADVISOR_BASE_URL"`
	AdvisorAPIKey  string `mapstructure:"ADVISOR_API_KEY"`
	AdvisorModel   string `mapstructure:"ADVISOR_MODEL"`

	AMQPURL      string `mapstructure:"AMQP_URL"`
	AMQPExchange string `mapstructure:"AMQP_EXCHANGE"`

	ReminderSchedule string `mapstructure:"REMINDER_SCHEDULE"`
}

var keys = []string{
	"PORT", "DB_PATH", "STATIC_PATH", "LOG_LEVEL", "LOG_FILE",
	"SESSION_SECRET", "SESSION_TTL", "FAMILY_MEMBERS", "JUNTA_COLLECTORS",
	"DEFAULT_CURRENCY", "DISPLAY_LOCALE",
	"ADVISOR_BASE_URL", "ADVISOR_API_KEY", "ADVISOR_MODEL",
	"AMQP_URL", "AMQP_EXCHANGE", "REMINDER_SCHEDULE",
}

// LoadEnvFile loads a .env file into the process environment when present.
func LoadEnvFile(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_PATH", "./data/familyfinance.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("DEFAULT_CURRENCY", "USD")
	v.SetDefault("DISPLAY_LOCALE", "en-US")
	v.SetDefault("ADVISOR_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("ADVISOR_MODEL", "gpt-4o-mini")
	v.SetDefault("AMQP_EXCHANGE", "familyfinance_events")
	v.SetDefault("REMINDER_SCHEDULE", "0 9 * * *")
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about.
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.FamilyMembers = splitList(v.GetString("FAMILY_MEMBERS"))
	cfg.JuntaCollectors = splitList(v.GetString("JUNTA_COLLECTORS"))
	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(cfg.DefaultCurrency))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if len(c.FamilyMembers) == 0 {
		errs = append(errs, errors.New("FAMILY_MEMBERS is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if !currency.ValidCode(c.DefaultCurrency) {
		errs = append(errs, fmt.Errorf("DEFAULT_CURRENCY must be an ISO 4217 code, got %q", c.DefaultCurrency))
	}
	return errors.Join(errs...)
}

// AdvisorEnabled reports whether an API key for the advisor is configured.
func (c *Config) AdvisorEnabled() bool {
	return c.AdvisorAPIKey != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
