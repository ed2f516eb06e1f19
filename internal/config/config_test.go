package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "lazyintern")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DB_NAME", "lazyintern")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, 10*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, "us-east-1", cfg.Mail.Region)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.False(t, cfg.App.IsProduction())
	assert.False(t, cfg.AI.Enabled())
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, "host=localhost port=5432 dbname=lazyintern user=postgres password= sslmode=disable", cfg.Database.DSN())
}

func TestFromEnv_Missing(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("DB_NAME", " ")

	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "DB_NAME")
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}

func TestFromEnv_Invalid(t *testing.T) {
	setRequired(t)
	t.Setenv("OTP_TTL", "soon")
	t.Setenv("REDIS_DB", "-1")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTP_TTL")
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("REDIS_LIST_TTL", "5m")
	t.Setenv("SES_REGION", "eu-west-1")
	t.Setenv("DB_DRIVER", "stdlib")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("AI_TIMEOUT", "3s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 5*time.Minute, cfg.Redis.ListTTL)
	assert.Equal(t, "eu-west-1", cfg.Mail.Region)
	assert.Equal(t, "stdlib", cfg.Database.Driver)
	assert.True(t, cfg.AI.Enabled())
	assert.Equal(t, 3*time.Second, cfg.AI.Timeout)
}
