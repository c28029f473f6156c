package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Rdb is the global Redis client, nil when Redis is not configured.
var Rdb *redis.Client

// Connect initializes the global Redis client. Redis is optional here — it
// only backs lookup caching — so a missing or unreachable server is logged
// and the application continues without it.
func Connect(addr string) {
	if addr == "" {
		logrus.Info("REDIS_ADDR not set, running without cache")
		return
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warnf("Redis unreachable at %s, running without cache", addr)
		return
	}

	Rdb = client
	logrus.Info("Redis connection established.")
}
