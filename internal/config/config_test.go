package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_SECRET", "TOKEN_TTL", "BCRYPT_COST", "STORAGE_DRIVER", "REDIS_ADDR", "RESET_DB"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.ResetDB)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("STORAGE_DRIVER", StorageMySQL)
	t.Setenv("REDIS_DB", "2")
	t.Setenv("RESET_DB", "true")

	cfg := Load()

	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, StorageMySQL, cfg.StorageDriver)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.ResetDB)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "lots")
	t.Setenv("TOKEN_TTL", "-5m")

	cfg := Load()

	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
}
