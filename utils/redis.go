package utils

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anjuman-committee/community-backend/config"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client used by the rate limiter.
// Redis is optional; without it the limiter falls back to memory.
func InitRedis(cfg *config.Config) error {
	if cfg.RedisAddr == "" {
		log.Println("ℹ️ REDIS_ADDR not set, continuing without Redis")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	redisClient = client
	log.Println("✅ Redis connection established")
	return nil
}

// GetRedisClient returns the shared client, or nil when Redis is disabled
func GetRedisClient() *redis.Client {
	return redisClient
}
