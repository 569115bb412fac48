package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"hotelbooking/internal/config"
	"hotelbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type RateDecision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}

// tokenBucketScript refills `refill` tokens every interval_ms up to capacity
// and takes one token per call. State lives in a hash per key.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 then
	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
		last_refill = last_refill + (intervals * interval_ms)
	end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

type RedisTokenBucket struct {
	rdb *redis.Client
	cfg config.RateLimitConfig
	now func() time.Time
}

func NewRedisTokenBucket(rdb *redis.Client, cfg config.RateLimitConfig) *RedisTokenBucket {
	return &RedisTokenBucket{rdb: rdb, cfg: cfg, now: time.Now}
}

func (b *RedisTokenBucket) Allow(ctx context.Context, key string) (RateDecision, error) {
	ttl := b.cfg.RefillEvery * time.Duration(b.cfg.Capacity)
	if ttl < time.Minute {
		ttl = time.Minute
	}

	vals, err := tokenBucketScript.Run(ctx, b.rdb, []string{key},
		b.now().UnixMilli(),
		b.cfg.Capacity,
		b.cfg.RefillEvery.Milliseconds(),
		int64(ttl/time.Second),
	).Int64Slice()
	if err != nil {
		return RateDecision{}, err
	}
	if len(vals) != 3 {
		return RateDecision{}, fmt.Errorf("ratelimit: unexpected script result %v", vals)
	}
	return RateDecision{
		Allowed:    vals[0] == 1,
		Remaining:  vals[1],
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

// RateLimit throttles per client IP and route. A nil limiter disables it;
// limiter errors fail open.
func RateLimit(limiter RateLimiter, capacity int, log logrus.FieldLogger) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := "rl:" + c.FullPath() + ":" + c.ClientIP()

		d, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(capacity))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining, 10))

		if !d.Allowed {
			secs := int(math.Ceil(d.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(secs))
			response.Abort(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many requests, please try again later")
			return
		}
		c.Next()
	}
}
