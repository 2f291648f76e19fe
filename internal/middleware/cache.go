package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/film-catalog/internal/config"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
    http.ResponseWriter
    status    int
    buf       bytes.Buffer
    limit     int64
    truncated bool
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }

func (cw *captureWriter) Write(b []byte) (int, error) {
    if !cw.truncated {
        if cw.limit > 0 && int64(cw.buf.Len()+len(b)) > cw.limit {
            cw.truncated = true
            cw.buf.Reset()
        } else {
            cw.buf.Write(b)
        }
    }
    return cw.ResponseWriter.Write(b)
}

// cachedResponse is what gets stored in Redis for one cache key.  Only
// content headers are kept: CORS, Vary and the request id belong to the
// request being answered and are set by the outer middleware every time.
type cachedResponse struct {
    Status      int    `json:"status"`
    ContentType string `json:"content_type"`
    Body        []byte `json:"body"`
}

// genKey holds the cache generation.  Entries are keyed under the
// generation current when the read started, so a listing computed before a
// write lands under a generation that no later read will ask for.
func genKey(prefix string) string { return prefix + ":gen" }

func entryPattern(prefix string) string { return prefix + ":v:*" }

func generation(ctx context.Context, rdb *redis.Client, prefix string) (int64, error) {
    n, err := rdb.Get(ctx, genKey(prefix)).Int64()
    if errors.Is(err, redis.Nil) {
        return 0, nil
    }
    return n, err
}

// cacheKeyFrom builds a stable key under cfg.Prefix and the given
// generation.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context, gen int64) string {
    r := c.Request()
    var parts []string
    switch strings.ToLower(cfg.KeyStrategy) {
    case "route":
        parts = []string{"route", c.Path()}
    case "method_route":
        parts = []string{"method", r.Method, "route", c.Path()}
    case "method_route_query":
        parts = []string{"method", r.Method, "route", c.Path(), "q", r.URL.Query().Encode()}
    default: // "route_query"
        parts = []string{"route", c.Path(), "q", r.URL.Query().Encode()}
    }
    sum := sha1.Sum([]byte(strings.Join(parts, ":")))
    return fmt.Sprintf("%s:v:%d:%x", cfg.Prefix, gen, sum[:])
}

// NewRedisCache serves repeated reads from Redis.  Only 200 responses are
// stored.  With caching disabled or no client it is a pass-through, and a
// Redis error on lookup serves the request uncached.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }

            ctx := c.Request().Context()
            gen, err := generation(ctx, rdb, cfg.Prefix)
            if err != nil {
                c.Logger().Warnf("cache: read generation: %v", err)
                return next(c)
            }
            key := cacheKeyFrom(cfg, c, gen)

            if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
                var hit cachedResponse
                if json.Unmarshal(bs, &hit) == nil {
                    h := c.Response().Header()
                    if hit.ContentType != "" {
                        h.Set(echo.HeaderContentType, hit.ContentType)
                    }
                    h.Set("X-Cache", "HIT")
                    c.Response().WriteHeader(hit.Status)
                    _, _ = c.Response().Write(hit.Body)
                    return nil
                }
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(cfg.MaxBodyBytes)}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if cw.status != http.StatusOK || cw.truncated {
                return nil
            }
            entry := cachedResponse{
                Status:      cw.status,
                ContentType: c.Response().Header().Get(echo.HeaderContentType),
                Body:        cw.buf.Bytes(),
            }
            if payload, err := json.Marshal(entry); err == nil {
                _ = rdb.Set(context.Background(), key, payload, ttl).Err()
            }
            return nil
        }
    }
}

// CacheInvalidator drops every cached response under a prefix.  Handlers
// call it after a successful write.
type CacheInvalidator struct {
    rdb    *redis.Client
    prefix string
}

// NewCacheInvalidator returns nil when caching is off, which handlers treat
// as "nothing to invalidate".
func NewCacheInvalidator(cfg config.CacheConfig, rdb *redis.Client) *CacheInvalidator {
    if !cfg.Enabled || rdb == nil {
        return nil
    }
    return &CacheInvalidator{rdb: rdb, prefix: cfg.Prefix}
}

// Invalidate bumps the generation, which retires every entry at once
// including ones still being computed, then deletes the old entries.
func (ci *CacheInvalidator) Invalidate(ctx context.Context) error {
    if err := ci.rdb.Incr(ctx, genKey(ci.prefix)).Err(); err != nil {
        return err
    }
    iter := ci.rdb.Scan(ctx, 0, entryPattern(ci.prefix), 100).Iterator()
    var keys []string
    for iter.Next(ctx) {
        keys = append(keys, iter.Val())
    }
    if err := iter.Err(); err != nil {
        return err
    }
    if len(keys) == 0 {
        return nil
    }
    return ci.rdb.Del(ctx, keys...).Err()
}
