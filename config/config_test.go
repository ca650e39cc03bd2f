package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, int64(100), cfg.StartingGold)
	assert.Equal(t, 2*time.Minute, cfg.PendingActionTTL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.AdminDiscordIDs)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("STARTING_GOLD", "250")
	t.Setenv("ADMIN_DISCORD_IDS", "1,2,3")
	t.Setenv("FIGHT_COOLDOWN", "1m")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, int64(250), cfg.StartingGold)
	assert.Equal(t, []int64{1, 2, 3}, cfg.AdminDiscordIDs)
	assert.Equal(t, time.Minute, cfg.FightCooldown)
	assert.True(t, cfg.IsAdmin(2))
	assert.False(t, cfg.IsAdmin(4))
}

func TestLoad_RequiresTokenOutsideTests(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/db")

	_, err := load()
	assert.ErrorContains(t, err, "DISCORD_TOKEN")

	t.Setenv("DISCORD_TOKEN", "token")
	cfg, err := load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_BadNumber(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("STARTING_GOLD", "lots")

	_, err := load()
	assert.Error(t, err)
}

func TestNewTestConfig(t *testing.T) {
	cfg := NewTestConfig()
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.IsAdmin(999))
}
