package config

import "time"

// RateLimitConfig tunes the token bucket that guards the simulated host
// actions (send message, regenerate suggestions, decide a request).
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int           // bucket size; RATE_LIMIT_BURST overrides it
    RefillTokens   int           // tokens added per RefillInterval
    RefillInterval time.Duration
    TTL            time.Duration // idle buckets expire after TTL
    KeyStrategy    string        // ip, route or ip_route
    Prefix         string
    Debug          bool
}

// LoadRateLimitConfig reads the RATE_LIMIT_* variables.  Host actions are
// human-paced, so the default bucket holds 20 actions and regains one per
// second.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 20),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
        Prefix:         envStr("RATE_LIMIT_PREFIX", "rl"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }
    if burst := envInt("RATE_LIMIT_BURST", 0); burst > 0 {
        cfg.Capacity = burst
    }
    cfg.normalize()
    return cfg
}

// normalize clamps values the Lua script cannot work with.  The TTL must
// outlive at least five refills or a throttled client would get a fresh
// bucket.
func (c *RateLimitConfig) normalize() {
    c.Capacity = max(c.Capacity, 1)
    c.RefillTokens = max(c.RefillTokens, 1)
    if c.RefillInterval <= 0 {
        c.RefillInterval = time.Second
    }
    c.TTL = max(c.TTL, 5*c.RefillInterval)
}
