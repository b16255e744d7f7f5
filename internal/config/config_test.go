package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Contains(t, cfg.DatabaseURL, "postgres://")
	assert.Empty(t, cfg.RedisAddr, "cache is disabled by default")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://example/db")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres://example/db", cfg.DatabaseURL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}
