package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/calliope")
	t.Setenv("GUILD_ID", "123")
	t.Setenv("CONFIRM_TIMEOUT_SECONDS", "120")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, "postgres://localhost/calliope", cfg.DatabaseURL)
	assert.Equal(t, "123", cfg.GuildID)
	assert.Equal(t, 120*time.Second, cfg.ConfirmTimeout())
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/calliope")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HealthAddr)
	assert.Equal(t, 600*time.Second, cfg.ConfirmTimeout())
}

func TestLoadConfigMissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/calliope")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigMissingDatabase(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
}
