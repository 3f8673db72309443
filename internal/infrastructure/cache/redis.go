package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"laudos-api/config"
)

// New returns nil, nil when no address is configured; every consumer in this
// package treats a nil client as "feature off".
func New(ctx context.Context, logger *zap.Logger, cfg config.Redis) (*redis.Client, error) {
	if cfg.Addr == "" {
		logger.Info("redis not configured, revocation and login rate limit disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("redis connected successfully", zap.String("addr", cfg.Addr))

	return rdb, nil
}
