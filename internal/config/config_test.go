package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"TELEGRAM_TOKEN", "DB_DSN", "ENV", "LOG_LEVEL", "ALARMS_FILE",
		"MIGRATIONS_PATH", "SOUNDS_DIR", "PLAYER_COMMAND", "TICK_INTERVAL", "AUTO_STOP",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "alarms.json", cfg.AlarmsFile)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "sounds", cfg.SoundsDir)
	assert.Equal(t, "ffplay", cfg.PlayerCommand)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 30*time.Second, cfg.AutoStop)
	assert.False(t, cfg.UseDatabase())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("DB_DSN", "postgres://localhost/alarms")
	t.Setenv("ENV", "production")
	t.Setenv("TICK_INTERVAL", "500ms")
	t.Setenv("AUTO_STOP", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.UseDatabase())
	assert.Equal(t, "postgres://localhost/alarms", cfg.GetDBDSN())
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, time.Minute, cfg.AutoStop)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		clearEnv(t)
		_, err := Load()
		assert.ErrorContains(t, err, "TELEGRAM_TOKEN")
	})

	t.Run("bad duration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_TOKEN", "123:abc")
		t.Setenv("AUTO_STOP", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "AUTO_STOP")
	})

	t.Run("non-positive duration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_TOKEN", "123:abc")
		t.Setenv("TICK_INTERVAL", "0s")
		_, err := Load()
		assert.ErrorContains(t, err, "TICK_INTERVAL")
	})
}
