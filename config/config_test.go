package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_HOST", "REDIS_ADDR", "TOKEN_RATE_LIMIT", "API_RATE_LIMIT", "TAG_RATE_LIMIT", "MAIL_SEND_ENABLED", "DB_WAIT_INTERVAL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 10, cfg.TokenRateLimit)
	assert.Equal(t, 300, cfg.APIRateLimit)
	assert.Equal(t, 60, cfg.TagRateLimit)
	assert.False(t, cfg.MailSendEnabled)
	assert.Equal(t, time.Second, cfg.DBWaitInterval)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("DB_WAIT_ATTEMPTS", "6")
	t.Setenv("DB_WAIT_INTERVAL", "250ms")
	t.Setenv("MAIL_SEND_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 6, cfg.DBWaitAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.DBWaitInterval)
	assert.True(t, cfg.MailSendEnabled)
	assert.Equal(t, "postgres://app:secret@db:5432/recipes?sslmode=disable", cfg.PostgresDSN())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TOKEN_RATE_LIMIT", "many")
	t.Setenv("HTTP_LOG_ENABLED", "maybe")
	t.Setenv("TOKEN_CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 10, cfg.TokenRateLimit)
	assert.False(t, cfg.HTTPLogEnabled)
	assert.Equal(t, 10*time.Minute, cfg.TokenCacheTTL)
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{
		CORSAllowedOrigins: "http://a.test, ,http://b.test",
		ElasticsearchAddrs: "",
	}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}
