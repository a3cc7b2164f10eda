package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucotrack/glucotrack-api/config"
)

func newLimitedRouter(cfg RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/alert/glycemia", RateLimiter(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return r
}

func postFrom(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/alert/glycemia", nil)
	req.RemoteAddr = ip + ":1234"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_WithoutRedis(t *testing.T) {
	config.SetRedisClientForTesting(nil)
	defer config.SetRedisClientForTesting(nil)

	r := newLimitedRouter(RateLimitConfig{Limit: 2, Window: time.Minute})
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, postFrom(r, "192.168.1.1").Code, "request %d", i+1)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	config.SetRedisClientForTesting(db)
	defer config.SetRedisClientForTesting(nil)

	key := rateLimitKey("/alert/glycemia", "10.0.0.7")
	mock.ExpectIncr(key).SetVal(2)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	mock.ExpectIncr(key).SetVal(3)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	r := newLimitedRouter(RateLimitConfig{Limit: 2, Window: time.Minute})
	assert.Equal(t, http.StatusOK, postFrom(r, "10.0.0.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, postFrom(r, "10.0.0.7").Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_RedisErrorAllowsRequest(t *testing.T) {
	db, mock := redismock.NewClientMock()
	config.SetRedisClientForTesting(db)
	defer config.SetRedisClientForTesting(nil)

	key := rateLimitKey("/alert/glycemia", "10.0.0.8")
	mock.ExpectIncr(key).SetErr(errors.New("connection refused"))
	mock.ExpectExpire(key, defaultRateWindow).SetVal(true)

	r := newLimitedRouter(RateLimitConfig{})
	assert.Equal(t, http.StatusOK, postFrom(r, "10.0.0.8").Code)
}

func TestResetRateLimit(t *testing.T) {
	config.SetRedisClientForTesting(nil)
	assert.Error(t, ResetRateLimit(context.Background(), "192.168.1.1", "/alert/glycemia"))

	db, mock := redismock.NewClientMock()
	config.SetRedisClientForTesting(db)
	defer config.SetRedisClientForTesting(nil)

	mock.ExpectDel(rateLimitKey("/alert/glycemia", "192.168.1.1")).SetVal(1)
	require.NoError(t, ResetRateLimit(context.Background(), "192.168.1.1", "/alert/glycemia"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
