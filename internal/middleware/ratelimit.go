package middleware

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/devwithnaveed/cineverse-api/internal/config"
)

// 令牌桶状态保存在 Redis Hash 中，脚本内完成补充与扣减，
// 保证多实例部署时对同一个键的判定原子
const tokenBucketScript = `
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
    tokens = capacity
    last_refill = now_ms
end

if interval_ms > 0 and refill_tokens > 0 then
    local elapsed = math.max(0, now_ms - last_refill)
    local intervals = math.floor(elapsed / interval_ms)
    if intervals > 0 then
        tokens = math.min(capacity, tokens + (intervals * refill_tokens))
        last_refill = last_refill + (intervals * interval_ms)
    end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    local until_next = interval_ms - (now_ms - last_refill)
    if until_next < 0 then until_next = 0 end
    retry_after_ms = until_next
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`

// RateLimiter 基于 Redis 令牌桶的限流器。
// Redis 不可用时放行请求，限流是保护手段，不能成为单点
type RateLimiter struct {
	cfg    config.RateLimitConfig
	rdb    *redis.Client
	script *redis.Script
}

// NewRateLimiter 创建限流器，rdb 为 nil 时所有中间件直接放行
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) *RateLimiter {
	return &RateLimiter{
		cfg:    cfg,
		rdb:    rdb,
		script: redis.NewScript(tokenBucketScript),
	}
}

// Global 全局限流，按 IP+路由 计数，容量与补充速率取自配置
func (l *RateLimiter) Global() gin.HandlerFunc {
	return l.limit(l.cfg.Capacity, l.cfg.RefillTokens, l.cfg.RefillInterval)
}

// PerMinute 每分钟 capacity 次的小桶，用于登录/注册等敏感接口
func (l *RateLimiter) PerMinute(capacity int) gin.HandlerFunc {
	return l.limit(capacity, capacity, time.Minute)
}

func (l *RateLimiter) limit(capacity, refillTokens int, interval time.Duration) gin.HandlerFunc {
	if !l.cfg.Enabled || l.rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := l.cfg.Prefix + ":ip:" + c.ClientIP() + ":route:" + c.Request.Method + " " + c.FullPath()

		args := []interface{}{
			time.Now().UnixMilli(),
			capacity,
			refillTokens,
			interval.Milliseconds(),
			int64(l.cfg.TTL / time.Second),
		}

		vals, err := l.script.Run(c.Request.Context(), l.rdb, []string{key}, args...).Result()
		if err != nil {
			log.Printf("限流脚本执行失败，放行请求: %v", err)
			c.Next()
			return
		}

		arr, ok := vals.([]interface{})
		if !ok || len(arr) != 3 {
			c.Next()
			return
		}

		allowed := asInt64(arr[0]) == 1
		remaining := asInt64(arr[1])
		retryMs := asInt64(arr[2])

		c.Header("X-RateLimit-Limit", strconv.Itoa(capacity))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			secs := int(math.Ceil(float64(retryMs) / 1000.0))
			if secs < 0 {
				secs = 0
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "请求过于频繁，请稍后再试",
				"retry_after": secs,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
