package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/labstack/gommon/random"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration of the dashboard server and CLI.
type Config struct {
	Port          int           `yaml:"port"`
	DatabaseURL   string        `yaml:"database_url"`
	Redis         RedisConfig   `yaml:"redis"`
	JWTSecret     string        `yaml:"jwt_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	ListCacheTTL  time.Duration `yaml:"list_cache_ttl"`
	LogLevel      string        `yaml:"log_level"`
	Development   bool          `yaml:"development"`
	SecureCookies bool          `yaml:"secure_cookies"`

	// GeneratedSecret is set when no JWT secret was configured and a random one is in use.
	GeneratedSecret bool `yaml:"-"`
}

// RedisConfig contains the cache connection settings
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Port:         8080,
		Redis:        RedisConfig{Addr: "localhost:6379"},
		SessionTTL:   24 * time.Hour,
		ListCacheTTL: 5 * time.Minute,
		LogLevel:     "info",
	}
}

// Load applies the YAML file at path (if any) and then the environment on top of the defaults.
func Load(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = random.String(32)
		cfg.GeneratedSecret = true
	}

	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		c.Redis.DB = db
	}
	if v := getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		c.SessionTTL = ttl
	}
	if v := getenv("LIST_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LIST_CACHE_TTL %q: %w", v, err)
		}
		c.ListCacheTTL = ttl
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("DEVELOPMENT"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DEVELOPMENT %q: %w", v, err)
		}
		c.Development = dev
	}
	if v := getenv("SECURE_COOKIES"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SECURE_COOKIES %q: %w", v, err)
		}
		c.SecureCookies = secure
	}
	return nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	if c.ListCacheTTL < 0 {
		return fmt.Errorf("list cache ttl cannot be negative, got %s", c.ListCacheTTL)
	}
	return nil
}
