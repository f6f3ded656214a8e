// Package bootstrap holds the start-up steps every rifas command shares.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/modorifa/rifas/internal/infrastructure/config"
	"github.com/modorifa/rifas/internal/shared/biztime"
	sharedConfig "github.com/modorifa/rifas/internal/shared/config"
	"github.com/modorifa/rifas/internal/shared/logger"
)

// Options are the root command's persistent flags.
type Options struct {
	Env        string
	ConfigPath string
	Verbose    bool
}

// Init loads configuration, the process logger and the business timezone.
func Init(opts *Options) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(opts.Env, opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, opts.Verbose); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// NeedsRedis reports whether any enabled feature talks to redis.
func NeedsRedis(cfg *config.Config) bool {
	return cfg.RateLimit.Enabled || cfg.Events.Driver == sharedConfig.EventsDriverRedis
}

// OpenRedis connects and pings redis.
func OpenRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
