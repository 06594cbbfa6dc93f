// Package config loads GradeBook settings from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/internal/infrastructure/messaging"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/redis"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Grade bounds
	Grades GradesConfig

	// Logging
	Log LogConfig

	// Event bus
	EventBus EventBusConfig

	// Redis standings mirror
	Redis RedisConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string      `env:"APP_NAME" envDefault:"gradebook"`
	Environment Environment `env:"APP_ENV" envDefault:"development"`
}

// GradesConfig holds the inclusive grade range.
type GradesConfig struct {
	Min int `env:"GRADEBOOK_MIN_GRADE" envDefault:"0"`
	Max int `env:"GRADEBOOK_MAX_GRADE" envDefault:"100"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR, FATAL, OFF.
	// Defaults to WARN so the menu stays quiet.
	Level string `env:"LOG_LEVEL" envDefault:"warn"`
}

// EventBusConfig holds in-process event bus settings.
type EventBusConfig struct {
	// Async runs handlers on a worker pool instead of the publishing goroutine.
	Async bool `env:"EVENTBUS_ASYNC" envDefault:"false"`

	// Workers bounds concurrent async handlers.
	Workers int `env:"EVENTBUS_WORKERS" envDefault:"4"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	// Disabled by default: the roster works without Redis.
	Enabled bool `env:"REDIS_ENABLED" envDefault:"false"`

	Host      string        `env:"REDIS_HOST" envDefault:"localhost"`
	Port      int           `env:"REDIS_PORT" envDefault:"6379"`
	Password  string        `env:"REDIS_PASSWORD"`
	DB        int           `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string        `env:"REDIS_KEY_PREFIX" envDefault:"gradebook:"`
	Timeout   time.Duration `env:"REDIS_TIMEOUT" envDefault:"3s"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	switch c.App.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Sprintf("APP_ENV must be development, staging or production, got %q", c.App.Environment))
	}

	if c.Grades.Min > c.Grades.Max {
		errs = append(errs, fmt.Sprintf("GRADEBOOK_MIN_GRADE (%d) must not exceed GRADEBOOK_MAX_GRADE (%d)", c.Grades.Min, c.Grades.Max))
	}

	if !knownLevel(c.Log.Level) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL %q is not a known level", c.Log.Level))
	}

	if c.EventBus.Async && c.EventBus.Workers < 1 {
		errs = append(errs, "EVENTBUS_WORKERS must be positive when EVENTBUS_ASYNC is set")
	}

	if c.Redis.Enabled {
		if c.Redis.Host == "" {
			errs = append(errs, "REDIS_HOST is required when REDIS_ENABLED is set")
		}
		if c.Redis.Port < 1 || c.Redis.Port > 65535 {
			errs = append(errs, "REDIS_PORT must be 1-65535")
		}
		if c.Redis.Timeout <= 0 {
			errs = append(errs, "REDIS_TIMEOUT must be positive")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// GradeBounds returns the configured grade range.
func (c *Config) GradeBounds() student.GradeBounds {
	return student.GradeBounds{Min: c.Grades.Min, Max: c.Grades.Max}
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logger.Level {
	return logger.ParseLevel(c.Log.Level)
}

// knownLevel accepts the names logger.ParseLevel understands.
func knownLevel(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR", "FATAL", "OFF", "NONE":
		return true
	}
	return false
}

// EventBusConfig converts the settings for the in-memory bus.
func (c *Config) EventBusConfig(log *logger.Logger) messaging.InMemoryEventBusConfig {
	return messaging.InMemoryEventBusConfig{
		AsyncMode:      c.EventBus.Async,
		WorkerPoolSize: c.EventBus.Workers,
		Logger:         log,
	}
}

// RedisCacheConfig converts the settings for the standings cache.
func (c *Config) RedisCacheConfig() redis.Config {
	cfg := redis.DefaultConfig()
	cfg.Host = c.Redis.Host
	cfg.Port = c.Redis.Port
	cfg.Password = c.Redis.Password
	cfg.DB = c.Redis.DB
	cfg.KeyPrefix = c.Redis.KeyPrefix
	cfg.Timeout = c.Redis.Timeout
	return cfg
}
