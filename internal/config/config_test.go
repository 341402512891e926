package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/prepai_test")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("GROQ_API_KEY", "gsk_test")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.NotEmpty(t, cfg.GetCORSOrigins())
	assert.True(t, cfg.Limiter.Enabled)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "sandbox")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}
