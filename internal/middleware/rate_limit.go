package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/pkg/cache"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/Payphone-Digital/jobboard/pkg/redis"
	"github.com/gin-gonic/gin"
)

// RateLimiter is a sliding window counter per client IP and route. Windows
// live in a Redis sorted set when Redis is configured, otherwise in process.
type RateLimiter struct {
	redis      *redis.Client
	local      *cache.Cache[[]time.Time]
	maxRequest int
	duration   time.Duration
}

func NewRateLimiter(redisClient *redis.Client, maxRequest int, duration time.Duration) *RateLimiter {
	rl := &RateLimiter{
		redis:      redisClient,
		maxRequest: maxRequest,
		duration:   duration,
	}
	if redisClient == nil {
		rl.local = cache.NewCache[[]time.Time](duration)
	}
	return rl
}

// Allow records a hit on key and reports how many hits the window now holds.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (int, bool, error) {
	now := time.Now()
	if rl.redis == nil {
		count := len(rl.local.Update(key, rl.duration, func(hits []time.Time, _ bool) []time.Time {
			return append(prune(hits, now.Add(-rl.duration)), now)
		}))
		return count, count <= rl.maxRequest, nil
	}

	card, err := rl.redis.SlidingWindow(ctx, constants.CacheKeyRateLimit+key, rl.duration, now)
	if err != nil {
		return 0, true, err
	}
	count := int(card)
	return count, count <= rl.maxRequest, nil
}

func (rl *RateLimiter) Close() {
	if rl.local != nil {
		rl.local.Close()
	}
}

// Handler rejects a client once it exceeds the window. Storage failures,
// an open Redis circuit included, let the request through.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := c.ClientIP() + ":" + c.FullPath()

		count, allowed, err := rl.Allow(ctx, key)
		if err != nil {
			logger.WarnWithContext(ctx, "Rate limit store unavailable").
				String("key", key).
				Err(err).
				Log()
			c.Next()
			return
		}

		remaining := max(rl.maxRequest-count, 0)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxRequest))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			logger.WarnWithContext(ctx, "Rate limit exceeded").
				String("method", c.Request.Method).
				String("path", c.Request.URL.Path).
				Int("current_requests", count).
				Int("max_requests", rl.maxRequest).
				Duration(rl.duration).
				Log()
			c.Header("Retry-After", strconv.Itoa(int(rl.duration.Seconds())))
			abort(c, http.StatusTooManyRequests, constants.MsgTooManyRequests)
			return
		}

		c.Next()
	}
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
