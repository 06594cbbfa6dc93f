// Package redis publishes GradeBook standings to Redis for external readers.
// Redis is a published view only: the roster never reads it back, and the
// mirror is off unless explicitly enabled.
//
// Key layout (prefix defaults to "gradebook:"):
//   - Sorted Set "{prefix}standings" stores name -> average
//   - Hash "{prefix}grades" stores name -> JSON grade list
//   - String "{prefix}meta" stores JSON metadata (update time, counts, class average)
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// KeyPrefix namespaces every key written by the mirror.
	KeyPrefix string

	// PoolSize is the maximum number of socket connections.
	PoolSize int

	// Timeout bounds dialing and each read/write.
	Timeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:      "localhost",
		Port:      6379,
		KeyPrefix: "gradebook:",
		PoolSize:  4,
		Timeout:   3 * time.Second,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrCacheConnection is returned when Redis connection fails.
	ErrCacheConnection = errors.New("cache: connection failed")

	// ErrCacheSerialization is returned when serialization fails.
	ErrCacheSerialization = errors.New("cache: serialization failed")
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORDS
// ══════════════════════════════════════════════════════════════════════════════

// StandingRecord is one student as written to Redis.
type StandingRecord struct {
	Position int     `json:"position"`
	Name     string  `json:"name"`
	Average  float64 `json:"average"`
	Grades   []int   `json:"grades"`
}

// StandingsMeta describes the last published standings.
type StandingsMeta struct {
	UpdatedAt     time.Time `json:"updated_at"`
	TotalStudents int       `json:"total_students"`
	TotalGrades   int       `json:"total_grades"`
	ClassAverage  float64   `json:"class_average"`
}

// ══════════════════════════════════════════════════════════════════════════════
// CACHE CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Cache writes standings to Redis.
type Cache struct {
	client *redis.Client
	config Config
}

// NewCache connects to Redis and verifies the connection with PING.
func NewCache(ctx context.Context, cfg Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	return &Cache{
		client: client,
		config: cfg,
	}, nil
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Key returns the namespaced key for name.
func (c *Cache) Key(name string) string {
	return c.config.KeyPrefix + name
}

// ReplaceStandings atomically replaces the published standings.
func (c *Cache) ReplaceStandings(ctx context.Context, records []StandingRecord, meta StandingsMeta) error {
	standingsKey := c.Key("standings")
	gradesKey := c.Key("grades")

	members := make([]redis.Z, 0, len(records))
	grades := make(map[string]any, len(records))
	for _, r := range records {
		members = append(members, redis.Z{Score: r.Average, Member: r.Name})

		data, err := json.Marshal(r.Grades)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
		}
		grades[r.Name] = data
	}

	metaData, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, standingsKey, gradesKey)
	if len(members) > 0 {
		pipe.ZAdd(ctx, standingsKey, members...)
		pipe.HSet(ctx, gradesKey, grades)
	}
	pipe.Set(ctx, c.Key("meta"), metaData, 0)

	_, err = pipe.Exec(ctx)
	return err
}
