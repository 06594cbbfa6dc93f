package config

import (
	"testing"
	"time"

	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gradebook", cfg.App.Name)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, student.DefaultGradeBounds(), cfg.GradeBounds())
	assert.Equal(t, logger.LevelWarn, cfg.LogLevel())

	assert.False(t, cfg.EventBus.Async)
	assert.Equal(t, 4, cfg.EventBus.Workers)

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "gradebook:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 3*time.Second, cfg.Redis.Timeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("GRADEBOOK_MIN_GRADE", "1")
	t.Setenv("GRADEBOOK_MAX_GRADE", "10")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_KEY_PREFIX", "class7:")
	t.Setenv("REDIS_TIMEOUT", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, student.GradeBounds{Min: 1, Max: 10}, cfg.GradeBounds())
	assert.Equal(t, logger.LevelDebug, cfg.LogLevel())

	rc := cfg.RedisCacheConfig()
	assert.Equal(t, "cache:6380", rc.Addr())
	assert.Equal(t, 2, rc.DB)
	assert.Equal(t, "class7:", rc.KeyPrefix)
	assert.Equal(t, 500*time.Millisecond, rc.Timeout)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("GRADEBOOK_MAX_GRADE", "lots")

	_, err := Load()
	assert.ErrorContains(t, err, "parse env")
}

func TestValidate_AggregatesErrors(t *testing.T) {
	t.Setenv("APP_ENV", "moon")
	t.Setenv("GRADEBOOK_MIN_GRADE", "50")
	t.Setenv("GRADEBOOK_MAX_GRADE", "10")
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_PORT", "0")

	_, err := Load()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "configuration errors:\n  - ")
	assert.Contains(t, msg, "APP_ENV")
	assert.Contains(t, msg, "GRADEBOOK_MIN_GRADE (50) must not exceed GRADEBOOK_MAX_GRADE (10)")
	assert.Contains(t, msg, `LOG_LEVEL "chatty"`)
	assert.Contains(t, msg, "REDIS_PORT must be 1-65535")
}

func TestValidate_RedisCheckedOnlyWhenEnabled(t *testing.T) {
	t.Setenv("REDIS_PORT", "0")

	_, err := Load()
	assert.NoError(t, err)
}

func TestLoad_EventBus(t *testing.T) {
	t.Setenv("EVENTBUS_ASYNC", "true")
	t.Setenv("EVENTBUS_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	bc := cfg.EventBusConfig(logger.Nop())
	assert.True(t, bc.AsyncMode)
	assert.Equal(t, 8, bc.WorkerPoolSize)
	assert.NotNil(t, bc.Logger)
}

func TestValidate_EventBusWorkers(t *testing.T) {
	t.Setenv("EVENTBUS_ASYNC", "true")
	t.Setenv("EVENTBUS_WORKERS", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "EVENTBUS_WORKERS must be positive")
}
