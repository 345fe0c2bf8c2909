package repository

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/golang/snappy"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/guest-hub/internal/config"
    "github.com/iliyamo/guest-hub/internal/model"
)

type fakeLoader struct {
    listings []model.Listing
    err      error
    calls    int
}

func (f *fakeLoader) Listings(context.Context) ([]model.Listing, error) {
    f.calls++
    return f.listings, f.err
}

func sampleListings() []model.Listing {
    return []model.Listing{{
        ID:    7,
        Title: "Cozy Downtown Apartment",
        Availability: []model.AvailabilityEntry{
            {Date: "2025-12-05", BookedBy: "booking", GuestName: "Sarah", CheckIn: "2025-12-05", Guests: 2},
            {Date: "2025-12-06"},
        },
    }}
}

func TestCachedListings_PassThrough(t *testing.T) {
    tests := []struct {
        name string
        rdb  *redis.Client
        cfg  config.ListingCacheConfig
    }{
        {"no client", nil, config.ListingCacheConfig{Enabled: true, TTL: time.Minute, Key: "k"}},
        {"disabled", redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), config.ListingCacheConfig{Enabled: false, Key: "k"}},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            loader := &fakeLoader{listings: sampleListings()}
            c := NewCachedListings(loader, tc.rdb, tc.cfg)

            got, err := c.Listings(context.Background())
            require.NoError(t, err)
            assert.Equal(t, sampleListings(), got)
            assert.Equal(t, 1, loader.calls)
            assert.NoError(t, c.Invalidate(context.Background()))
        })
    }
}

func TestCachedListings_RedisDownFallsBack(t *testing.T) {
    rdb := redis.NewClient(&redis.Options{
        Addr:        "127.0.0.1:1",
        DialTimeout: 200 * time.Millisecond,
        MaxRetries:  -1,
    })
    defer rdb.Close()

    loader := &fakeLoader{listings: sampleListings()}
    c := NewCachedListings(loader, rdb, config.ListingCacheConfig{Enabled: true, TTL: time.Minute, Key: "k"})

    got, err := c.Listings(context.Background())
    require.NoError(t, err)
    assert.Equal(t, sampleListings(), got)
    assert.Equal(t, 1, loader.calls)
}

func TestCachedListings_LoaderErrorPropagates(t *testing.T) {
    boom := errors.New("db down")
    c := NewCachedListings(&fakeLoader{err: boom}, nil, config.ListingCacheConfig{})
    _, err := c.Listings(context.Background())
    assert.ErrorIs(t, err, boom)
}

func TestNewCachedListings_NilLoaderPanics(t *testing.T) {
    assert.Panics(t, func() { NewCachedListings(nil, nil, config.ListingCacheConfig{}) })
}

func TestSnapshotCodec(t *testing.T) {
    payload, err := encodeSnapshot(sampleListings())
    require.NoError(t, err)

    got, err := decodeSnapshot(payload)
    require.NoError(t, err)
    assert.Equal(t, sampleListings(), got)
}

func TestDecodeSnapshot_Corrupt(t *testing.T) {
    tests := []struct {
        name    string
        payload []byte
    }{
        {"not snappy", []byte("\xff\xff\xff\xff garbage")},
        {"not json", snappy.Encode(nil, []byte("{nope"))},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            _, err := decodeSnapshot(tc.payload)
            assert.ErrorIs(t, err, ErrCacheMiss)
        })
    }
}
