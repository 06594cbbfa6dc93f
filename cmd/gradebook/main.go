// Package main - точка входа интерактивного журнала оценок GradeBook.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: студенты, оценки и рейтинг без внешних зависимостей
// - Application: команды и запросы к журналу
// - Infrastructure: журнал в памяти, шина событий, зеркало рейтинга в Redis
// - Interface: текстовое меню в терминале
package main

import (
	"context"
	"fmt"
	"os"

	// Configuration
	"github.com/alem-hub/gradebook/config"

	// Infrastructure layer
	"github.com/alem-hub/gradebook/internal/infrastructure/messaging"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/redis"

	// Interface layer
	"github.com/alem-hub/gradebook/internal/interface/cli"

	// Packages
	"github.com/alem-hub/gradebook/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gradebook: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ═══════════════════════════════════════════════════════════════════════
	// CONFIGURATION
	// ═══════════════════════════════════════════════════════════════════════

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Output: os.Stderr,
		Level:  cfg.LogLevel(),
	}).With(
		logger.String("app", cfg.App.Name),
		logger.String("env", string(cfg.App.Environment)),
	)

	// ═══════════════════════════════════════════════════════════════════════
	// INFRASTRUCTURE
	// ═══════════════════════════════════════════════════════════════════════

	bus := messaging.NewInMemoryEventBus(cfg.EventBusConfig(log))
	defer func() {
		_ = bus.Close()
		stats := bus.Metrics().Snapshot()
		log.Debug("event bus stopped",
			logger.Int("handler_successes", int(stats.HandlerSuccesses)),
			logger.Int("handler_failures", int(stats.HandlerFailures)),
			logger.Duration("avg_handler_duration", stats.AverageDuration),
		)
	}()

	if log.Enabled(logger.LevelDebug) {
		if err := bus.SubscribeAll(messaging.LogEvents(log)); err != nil {
			return fmt.Errorf("subscribe event log: %w", err)
		}
	}

	roster, err := memory.NewRoster(cfg.GradeBounds(),
		memory.WithPublisher(bus),
		memory.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("create roster: %w", err)
	}

	if cfg.Redis.Enabled {
		cache, err := redis.NewCache(context.Background(), cfg.RedisCacheConfig())
		if err != nil {
			// Зеркало рейтинга необязательно: журнал работает и без Redis.
			log.Warn("standings mirror disabled", logger.Err(err))
		} else {
			defer cache.Close()

			mirror := redis.NewStandingsMirror(cache, roster,
				redis.WithTimeout(cfg.Redis.Timeout*3),
				redis.WithMirrorLogger(log),
			)
			if err := mirror.Register(bus); err != nil {
				return fmt.Errorf("register standings mirror: %w", err)
			}
			log.Info("standings mirror enabled", logger.String("addr", cfg.RedisCacheConfig().Addr()))
		}
	}

	// ═══════════════════════════════════════════════════════════════════════
	// INTERFACE
	// ═══════════════════════════════════════════════════════════════════════

	app := cli.NewApp(roster, os.Stdin, os.Stdout, log)
	return app.Run()
}
