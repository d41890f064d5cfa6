package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "SERVER_HOST", "PORT",
		"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
		"DB_PATH", "SESSION_SECRET", "SESSION_TTL",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "cafes.db", cfg.Database.Path)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.Equal(t, "json", cfg.Observability.LogFormat)
}

func TestConfigFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/var/lib/cafes/cafes.db")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/var/lib/cafes/cafes.db", cfg.Database.Path)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestConfigValidation(t *testing.T) {
	t.Run("production requires a session secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENVIRONMENT", "production")

		_, err := New()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_SECRET")
	})

	t.Run("malformed durations fall back to defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SESSION_TTL", "not-a-duration")

		cfg, err := New()
		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	})

	t.Run("ttl must be positive", func(t *testing.T) {
		cfg := &Config{
			Database:      DatabaseConfig{Path: "cafes.db"},
			Session:       SessionConfig{TTL: -time.Hour},
			Observability: ObservabilityConfig{LogLevel: "info"},
		}
		assert.Error(t, cfg.Validate())
	})
}
