package config

import "time"

// CacheConfig drives the Redis cache in front of GET /films.
//   CACHE_ENABLED        – default true; still a no-op without Redis
//   CACHE_METHODS        – methods eligible for caching (default GET)
//   CACHE_TTL            – upper bound on staleness if an invalidation is lost
//   CACHE_KEY_STRATEGY   – route | method_route | route_query | method_route_query
//   CACHE_PREFIX         – key namespace, also the invalidation pattern
//   CACHE_MAX_BODY_BYTES – larger listings are served but not stored
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      envSet("CACHE_METHODS", "GET"),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        KeyStrategy:  getenv("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       getenv("CACHE_PREFIX", "films-cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}
