package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/flor3z/fault-bot/internal/storage"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	DiscordToken   string `env:"DISCORD_BOT_TOKEN"`
	DiscordGuildID string `env:"DISCORD_GUILD_ID"`

	// Fault API
	FaultAPIBaseURL string        `env:"FAULT_API_BASE_URL" envDefault:"https://api.playfault.com"`
	FaultAPITimeout time.Duration `env:"FAULT_API_TIMEOUT" envDefault:"10s"`
	RankIconBaseURL string        `env:"RANK_ICON_BASE_URL"`

	// Hero catalog refresh, zero disables it
	CatalogRefreshInterval time.Duration `env:"CATALOG_REFRESH_INTERVAL" envDefault:"6h"`

	// Registry
	RegistryBackend string `env:"REGISTRY_BACKEND" envDefault:"file"`
	RegistryPath    string `env:"REGISTRY_PATH" envDefault:"./data/users.json"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`

	// Observability
	MetricsAddr string `env:"METRICS_ADDR"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
}

// Load reads configuration from a .env file, if present, and the environment
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads configuration from the environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and backend settings
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if c.FaultAPITimeout <= 0 {
		return fmt.Errorf("FAULT_API_TIMEOUT must be positive")
	}
	if c.CatalogRefreshInterval < 0 {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must not be negative")
	}

	switch c.RegistryBackend {
	case storage.BackendFile, storage.BackendSQLite, storage.BackendBolt:
		if c.RegistryPath == "" {
			return fmt.Errorf("REGISTRY_PATH is required for the %s backend", c.RegistryBackend)
		}
	case storage.BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown REGISTRY_BACKEND %q", c.RegistryBackend)
	}
	return nil
}

// StorageOptions returns the registry settings
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:       c.RegistryBackend,
		Path:          c.RegistryPath,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
	}
}
