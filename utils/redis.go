package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sharath018/property-board-backend/config"
)

var RedisClient *redis.Client

var redisCtx = context.Background()

// InitRedis connects the package-level client. Call once at startup.
func InitRedis(cfg *config.Config) error {
	addr := cfg.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := RedisClient.Ping(redisCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Println("✅ Connected to Redis at", addr)
	return nil
}

// ======================
// Token helpers (password reset etc.)
// ======================

func SetToken(key, value string, ttl time.Duration) error {
	return RedisClient.Set(redisCtx, key, value, ttl).Err()
}

func GetToken(key string) (string, error) {
	return RedisClient.Get(redisCtx, key).Result()
}

func DeleteToken(key string) error {
	return RedisClient.Del(redisCtx, key).Err()
}

// ======================
// Cache helpers
// ======================

func GetCached(key string) (string, error) {
	val, err := RedisClient.Get(redisCtx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func SetCached(key, value string, ttl time.Duration) error {
	return RedisClient.Set(redisCtx, key, value, ttl).Err()
}

// InvalidateCache drops a cache key; a miss is not an error.
func InvalidateCache(key string) {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Del(redisCtx, key).Err(); err != nil {
		log.Printf("failed to invalidate cache key %s: %v", key, err)
	}
}
