package database

import (
	"context"
	"time"

	"trip-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedis connects to Redis. It returns nil when no address is configured
// or the server cannot be reached; callers treat a nil client as "rate
// limiting disabled".
func InitRedis(ctx context.Context, config utils.RedisConfig, log *zap.Logger) *redis.Client {
	if config.Addr == "" {
		log.Warn("Redis address not configured, rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, rate limiting disabled",
			zap.String("addr", config.Addr),
			zap.Error(err),
		)
		_ = client.Close()
		return nil
	}

	return client
}
