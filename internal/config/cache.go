package config

import "time"

// ListingCacheConfig controls the Redis copy of the listings snapshot.
// Without Redis, or with Enabled false, every refresh reads MySQL.  TTL
// bounds staleness when a listings.changed event is lost.
type ListingCacheConfig struct {
    Enabled bool
    TTL     time.Duration
    Key     string // Redis key holding the snappy-compressed snapshot
}

// LoadListingCacheConfig reads the LISTING_CACHE_* variables.
func LoadListingCacheConfig() ListingCacheConfig {
    return ListingCacheConfig{
        Enabled: envBool("LISTING_CACHE_ENABLED", true),
        TTL:     envDur("LISTING_CACHE_TTL", 5*time.Minute),
        Key:     envStr("LISTING_CACHE_PREFIX", "guesthub") + ":listings:snapshot:v2",
    }
}
