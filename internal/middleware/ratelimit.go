package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit returns middleware that allows maxRequests per client IP within
// each fixed window. Counters live in Redis so every replica shares them.
// The bucket name keeps separate endpoints from sharing a budget. Redis
// outages fail open and are logged.
func RateLimit(rdb *redis.Client, bucket string, maxRequests int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			slot := time.Now().UnixNano() / int64(window)
			key := fmt.Sprintf("ratelimit:%s:%s:%d", bucket, c.RealIP(), slot)

			var incr *redis.IntCmd
			_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				incr = pipe.Incr(ctx, key)
				pipe.Expire(ctx, key, window)
				return nil
			})
			if err != nil {
				slog.Warn("rate limiter unavailable",
					slog.String("bucket", bucket),
					slog.Any("error", err),
				)
				return next(c)
			}

			count := incr.Val()
			remaining := int64(maxRequests) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(maxRequests))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(maxRequests) {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error":   "rate_limited",
					"message": "Rate limit exceeded. Please try again later.",
				})
			}
			return next(c)
		}
	}
}
