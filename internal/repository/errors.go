// Package repository provides access to the listings store and the
// Redis snapshot cache in front of it.
package repository

import "errors"

// ErrCacheMiss is returned by the snapshot cache when no usable snapshot
// is stored.  Callers fall back to the listings store.
var ErrCacheMiss = errors.New("listing snapshot not cached")
