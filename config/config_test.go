package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "kidsfeed_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, http://localhost:5173")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "kidsfeed_test", cfg.MongoDB)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestLoadWithDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "kidsfeed", cfg.MongoDB)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MONGO_URI", "mongodb://db:27017")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateProduction(t *testing.T) {
	cfg := &Config{
		Environment:    "production",
		ServerPort:     "8080",
		MongoURI:       "mongodb://db:27017",
		MongoDB:        "kidsfeed",
		JWTSecret:      "short",
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "ALLOWED_ORIGINS")
}

func TestValidateBadLogLevel(t *testing.T) {
	cfg := &Config{
		ServerPort: "8080",
		MongoURI:   "mongodb://db:27017",
		MongoDB:    "kidsfeed",
		JWTSecret:  "test-secret",
		LogLevel:   "verbose",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}
