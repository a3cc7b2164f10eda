package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 2 * time.Second

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// ConnectRedis opens the shared redis client once. In the test environment
// no connection is made and the client stays nil; callers treat a nil
// client as "redis disabled".
func ConnectRedis() (*redis.Client, error) {
	var err error
	redisOnce.Do(func() {
		cfg := LoadConfig()
		if cfg == nil || cfg.IsTest() {
			return
		}

		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err = rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			err = fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
			return
		}
		redisClient = rdb
	})
	return redisClient, err
}

// GetRedisClient returns the shared client, nil when redis is disabled.
func GetRedisClient() *redis.Client {
	return redisClient
}

// CloseRedis releases the shared client.
func CloseRedis() error {
	if redisClient == nil {
		return nil
	}
	err := redisClient.Close()
	redisClient = nil
	return err
}

// SetRedisClientForTesting allows tests to inject a mock Redis client.
func SetRedisClientForTesting(client *redis.Client) {
	redisClient = client
}
