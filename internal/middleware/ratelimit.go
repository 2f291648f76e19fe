package middleware

import (
    "fmt"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/film-catalog/internal/config"
)

// takeToken refills the bucket stored at KEYS[1] for every whole interval
// elapsed since the last refill, then tries to take one token.
//
//   ARGV: now_ms, capacity, refill_tokens, interval_ms, ttl_s
//   reply: {allowed (0|1), tokens_left, wait_ms}
var takeToken = redis.NewScript(`
local now, cap, step, every, ttl =
    tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3]), tonumber(ARGV[4]), tonumber(ARGV[5])

local tokens = tonumber(redis.call('HGET', KEYS[1], 't'))
local stamp = tonumber(redis.call('HGET', KEYS[1], 'ts'))
if not tokens or not stamp then
    tokens, stamp = cap, now
end

local n = math.floor(math.max(now - stamp, 0) / every)
if n > 0 then
    tokens = math.min(cap, tokens + n * step)
    stamp = stamp + n * every
end

local ok, wait = 0, 0
if tokens >= 1 then
    ok, tokens = 1, tokens - 1
else
    wait = math.max(stamp + every - now, 0)
end

redis.call('HSET', KEYS[1], 't', tokens, 'ts', stamp)
redis.call('EXPIRE', KEYS[1], ttl)
return {ok, tokens, wait}
`)

type bucketResult struct {
    allowed   bool
    remaining int64
    wait      time.Duration
}

func takeFrom(c echo.Context, rdb *redis.Client, cfg config.RateLimitConfig, key string) (bucketResult, error) {
    reply, err := takeToken.Run(c.Request().Context(), rdb, []string{key},
        time.Now().UnixMilli(),
        cfg.Capacity,
        cfg.RefillTokens,
        cfg.RefillInterval.Milliseconds(),
        int64(cfg.TTL/time.Second),
    ).Int64Slice()
    if err != nil {
        return bucketResult{}, err
    }
    if len(reply) != 3 {
        return bucketResult{}, fmt.Errorf("unexpected bucket reply %v", reply)
    }
    return bucketResult{
        allowed:   reply[0] == 1,
        remaining: reply[1],
        wait:      time.Duration(reply[2]) * time.Millisecond,
    }, nil
}

// NewTokenBucket limits /films per client with a Redis token bucket.  If
// Redis misbehaves the request is let through.  A client with an empty
// bucket gets 429 and Retry-After in whole seconds.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    limit := strconv.Itoa(cfg.Capacity)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := buildRateKey(cfg, c)
            res, err := takeFrom(c, rdb, cfg, key)
            if err != nil {
                if cfg.Debug {
                    c.Logger().Warnf("ratelimit: %s: %v", key, err)
                }
                return next(c)
            }

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", limit)
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.remaining, 10))
            if cfg.Debug {
                h.Set("X-RateLimit-Key", key)
            }
            if res.allowed {
                return next(c)
            }

            secs := int((res.wait + time.Second - 1) / time.Second)
            h.Set("Retry-After", strconv.Itoa(secs))
            return c.JSON(http.StatusTooManyRequests, echo.Map{
                "error":       "Trop de requêtes",
                "retry_after": secs,
            })
        }
    }
}

// buildRateKey keys the bucket by client IP and/or matched route.  There
// are no user accounts, so the client IP is the only identity available.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    route := c.Request().Method + " " + c.Path()

    parts := []string{cfg.Prefix}
    switch strings.ToLower(cfg.KeyStrategy) {
    case "ip":
        parts = append(parts, "ip", ip)
    case "route":
        parts = append(parts, "route", route)
    default:
        parts = append(parts, "ip", ip, "route", route)
    }
    return strings.Join(parts, ":")
}
