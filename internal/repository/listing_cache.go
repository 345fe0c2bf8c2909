package repository

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"

    "github.com/golang/snappy"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/guest-hub/internal/config"
    "github.com/iliyamo/guest-hub/internal/model"
)

// CachedListings serves listings snapshots from Redis and falls back to the
// wrapped loader on a miss.  Snapshots are stored as snappy-compressed JSON
// because availability calendars are large and highly repetitive.  Any
// Redis failure degrades to a direct read; the cache never fails a refresh
// on its own.
type CachedListings struct {
    next ListingLoader
    rdb  *redis.Client
    cfg  config.ListingCacheConfig
}

// NewCachedListings wraps next with the snapshot cache.  A nil client or a
// disabled config makes the wrapper a pass-through.
func NewCachedListings(next ListingLoader, rdb *redis.Client, cfg config.ListingCacheConfig) *CachedListings {
    if next == nil {
        panic("nil loader passed to NewCachedListings")
    }
    return &CachedListings{next: next, rdb: rdb, cfg: cfg}
}

func (c *CachedListings) enabled() bool { return c.cfg.Enabled && c.rdb != nil }

// Listings returns the cached snapshot when present, otherwise loads it from
// the wrapped loader and stores it for cfg.TTL.
func (c *CachedListings) Listings(ctx context.Context) ([]model.Listing, error) {
    if !c.enabled() {
        return c.next.Listings(ctx)
    }
    listings, err := c.load(ctx)
    if err == nil {
        return listings, nil
    }
    if !errors.Is(err, ErrCacheMiss) {
        log.Printf("listing-cache: read failed: %v", err)
    }
    listings, err = c.next.Listings(ctx)
    if err != nil {
        return nil, err
    }
    payload, err := encodeSnapshot(listings)
    if err != nil {
        log.Printf("listing-cache: encode failed: %v", err)
        return listings, nil
    }
    if err := c.rdb.SetEx(ctx, c.cfg.Key, payload, c.cfg.TTL).Err(); err != nil {
        log.Printf("listing-cache: store failed: %v", err)
    }
    return listings, nil
}

// Invalidate drops the cached snapshot so the next read hits the store.
func (c *CachedListings) Invalidate(ctx context.Context) error {
    if !c.enabled() {
        return nil
    }
    return c.rdb.Del(ctx, c.cfg.Key).Err()
}

func (c *CachedListings) load(ctx context.Context) ([]model.Listing, error) {
    bs, err := c.rdb.Get(ctx, c.cfg.Key).Bytes()
    if errors.Is(err, redis.Nil) {
        return nil, ErrCacheMiss
    }
    if err != nil {
        return nil, err
    }
    return decodeSnapshot(bs)
}

func encodeSnapshot(listings []model.Listing) ([]byte, error) {
    raw, err := json.Marshal(listings)
    if err != nil {
        return nil, err
    }
    return snappy.Encode(nil, raw), nil
}

// decodeSnapshot reports ErrCacheMiss for payloads it cannot read so a
// corrupt entry is simply replaced.
func decodeSnapshot(bs []byte) ([]model.Listing, error) {
    raw, err := snappy.Decode(nil, bs)
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ErrCacheMiss, err)
    }
    var listings []model.Listing
    if err := json.Unmarshal(raw, &listings); err != nil {
        return nil, fmt.Errorf("%w: %v", ErrCacheMiss, err)
    }
    return listings, nil
}
