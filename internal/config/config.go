package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	yamlConfigPath = "config/bot.yaml"
	tomlConfigPath = "config/bot.toml"
)

// Config holds all runtime configuration for the bot
type Config struct {
	DiscordToken string `yaml:"discord_token" toml:"discord_token" env:"DISCORD_TOKEN"`
	DatabaseURL  string `yaml:"database_url" toml:"database_url" env:"DATABASE_URL"`
	// GuildID, when set, scopes slash-command registration to one guild for
	// faster iteration; empty registers the commands globally.
	GuildID    string `yaml:"guild_id" toml:"guild_id" env:"GUILD_ID"`
	OwnerID    string `yaml:"owner_id" toml:"owner_id" env:"OWNER_ID"`
	HealthAddr string `yaml:"health_addr" toml:"health_addr" env:"HEALTH_ADDR"`
	// ConfirmTimeoutSeconds bounds how long a destructive-action
	// confirmation stays answerable before it resolves as abandoned.
	ConfirmTimeoutSeconds int `yaml:"confirm_timeout_seconds" toml:"confirm_timeout_seconds" env:"CONFIRM_TIMEOUT_SECONDS"`
}

// ConfirmTimeout returns the confirmation window as a duration
func (c *Config) ConfirmTimeout() time.Duration {
	return time.Duration(c.ConfirmTimeoutSeconds) * time.Second
}

// LoadConfig loads configuration from multiple sources in order of
// preference: YAML file, then TOML file, then environment variables.
// File values are overridden by environment variables when both are set.
func LoadConfig() (*Config, error) {
	cfg := defaults()

	// Try loading YAML first, then TOML if YAML is absent
	if err := loadYAML(cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", yamlConfigPath, err)
		}
		if err := loadTOML(cfg); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", tomlConfigPath, err)
		}
	}

	loadEnv(cfg)

	if cfg.DiscordToken == "" {
		return nil, errors.New("DISCORD_TOKEN is not set")
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		HealthAddr:            ":8080",
		ConfirmTimeoutSeconds: 600,
	}
}

func loadYAML(cfg *Config) error {
	data, err := os.ReadFile(yamlConfigPath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadTOML(cfg *Config) error {
	data, err := os.ReadFile(tomlConfigPath)
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, cfg)
}

func loadEnv(cfg *Config) {
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		cfg.DiscordToken = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("GUILD_ID"); v != "" {
		cfg.GuildID = v
	}
	if v := os.Getenv("OWNER_ID"); v != "" {
		cfg.OwnerID = v
	}
	if v := os.Getenv("HEALTH_ADDR"); v != "" {
		cfg.HealthAddr = v
	}
	if v := os.Getenv("CONFIRM_TIMEOUT_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.ConfirmTimeoutSeconds = seconds
		}
	}
}
