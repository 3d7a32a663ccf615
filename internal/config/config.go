package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultAllowedOrigins is used when no origin list is configured at all.
const DefaultAllowedOrigins = "http://localhost:3000,http://127.0.0.1:3000,https://dca.btc.sv"

// FreshnessOff disables the freshness monitor when used as its schedule.
const FreshnessOff = "off"

// Config holds all application configuration.
type Config struct {
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Server struct {
		BindAddr string `yaml:"bind_addr"`
		// AllowedOrigins is nil when unset; an explicit empty string means
		// no origin is allowed.
		AllowedOrigins *string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	} `yaml:"logging"`
	Freshness struct {
		Cron       string `yaml:"cron"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"freshness"`
}

// Load reads .env and the YAML file at path, then applies environment
// variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("BIND_ADDR"); v != "" {
		cfg.Server.BindAddr = v
	}
	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		cfg.Server.AllowedOrigins = &v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("FRESHNESS_CRON"); v != "" {
		cfg.Freshness.Cron = v
	}
	if v := os.Getenv("FRESHNESS_MAX_AGE_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse FRESHNESS_MAX_AGE_DAYS: %w", err)
		}
		cfg.Freshness.MaxAgeDays = days
	}

	// Defaults
	if cfg.Store.Path == "" {
		cfg.Store.Path = "data/data.db"
	}
	if cfg.Server.BindAddr == "" {
		cfg.Server.BindAddr = "127.0.0.1:3001"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Freshness.Cron == "" {
		cfg.Freshness.Cron = "0 0 7 * * *"
	}
	if cfg.Freshness.MaxAgeDays == 0 {
		cfg.Freshness.MaxAgeDays = 4
	}

	return cfg, nil
}

// Origins returns the raw comma-separated origin list, falling back to
// DefaultAllowedOrigins when none was configured.
func (c *Config) Origins() string {
	if c.Server.AllowedOrigins == nil {
		return DefaultAllowedOrigins
	}
	return *c.Server.AllowedOrigins
}

// FreshnessEnabled reports whether the freshness monitor should run.
func (c *Config) FreshnessEnabled() bool {
	return c.Freshness.Cron != FreshnessOff
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	info, err := os.Stat(c.Store.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database not found at %s", c.Store.Path)
		}
		return fmt.Errorf("stat database: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path %s is a directory", c.Store.Path)
	}
	if c.Server.BindAddr == "" {
		return fmt.Errorf("server.bind_addr is required")
	}
	switch c.Logging.Format {
	case "json", "pretty":
	default:
		return fmt.Errorf("logging.format must be json or pretty, got %q", c.Logging.Format)
	}
	if c.FreshnessEnabled() {
		if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(c.Freshness.Cron); err != nil {
			return fmt.Errorf("freshness.cron: %w", err)
		}
		if c.Freshness.MaxAgeDays < 1 {
			return fmt.Errorf("freshness.max_age_days must be positive")
		}
	}
	return nil
}
