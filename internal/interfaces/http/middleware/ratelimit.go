package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dashboard-api/internal/config"
)

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// KeyFunc 从请求构建限流键
type KeyFunc func(c *gin.Context) string

// UserRateLimitKey 按用户（匿名时按客户端 IP）与路径限流
func UserRateLimitKey(c *gin.Context) string {
	subject := c.GetString("user_id")
	if subject == "" {
		subject = c.ClientIP()
	}
	return "ratelimit:" + subject + ":" + c.Request.URL.Path
}

// RateLimit 限流中间件
//
// 限流器故障时放行，避免 Redis 抖动放大为业务不可用。
func RateLimit(cfg config.RateLimitConfig, limiter RateLimiter, keyFn KeyFunc) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	if cfg.RequestsPerWindow <= 0 {
		cfg.RequestsPerWindow = 60
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if keyFn == nil {
		keyFn = UserRateLimitKey
	}

	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), keyFn(c), cfg.RequestsPerWindow, cfg.Window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":     429,
				"message":  "rate limit exceeded",
				"trace_id": c.GetString("trace_id"),
			})
			return
		}

		c.Next()
	}
}
