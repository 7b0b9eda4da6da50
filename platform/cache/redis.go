package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hongphuc2004/Music-Flow/platform/config"
)

// Cache is a thin redis wrapper used as a read-through cache for catalog
// listings. Cache failures are soft: callers log and fall back to the store.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func Connect(cfg *config.Config) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
	} else {
		log.Println("Connected to Redis server")
	}

	return &Cache{client: client, ttl: cfg.CacheTTL}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *Cache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) Close() {
	if c.client == nil {
		return
	}
	if err := c.client.Close(); err != nil {
		log.Printf("Error closing Redis connection: %v", err)
		return
	}
	log.Println("Redis connection closed")
}
