package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/glucotrack/glucotrack-api/config"
	"github.com/glucotrack/glucotrack-api/logger"
	"github.com/glucotrack/glucotrack-api/util"
)

const (
	defaultRateLimit  = 30
	defaultRateWindow = time.Minute
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	Log    *logger.Logger
}

func rateLimitKey(endpoint, clientIP string) string {
	return fmt.Sprintf("ratelimit:%s:%s", endpoint, clientIP)
}

// RateLimiter counts requests per route and client IP in redis. Requests
// are let through when redis is unavailable.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit <= 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultRateWindow
	}
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		allowed, err := checkRateLimit(c.Request.Context(), rateLimitKey(endpoint, clientIP), cfg.Limit, cfg.Window)
		if err != nil {
			cfg.Log.Warn("rate limit check failed", "client_ip", clientIP, "path", endpoint, "error", err)
			c.Next()
			return
		}

		if !allowed {
			cfg.Log.Warn("rate limit exceeded", "client_ip", clientIP, "path", endpoint, "request_id", GetRequestID(c))
			util.CallTooManyRequests(c, util.APIErrorParams{
				Msg: "Too many requests. Please try again later.",
				Err: errors.New("rate limit exceeded"),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimit returns true while the counter for key stays within limit.
func checkRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return true, nil
	}

	pipe := rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	_, err := pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return incrCmd.Val() <= int64(limit), nil
}

// ResetRateLimit clears the counter of one client on one route.
func ResetRateLimit(ctx context.Context, clientIP, endpoint string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return fmt.Errorf("redis not available")
	}
	return rdb.Del(ctx, rateLimitKey(endpoint, clientIP)).Err()
}
