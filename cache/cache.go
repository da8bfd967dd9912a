package cache

import (
	"context"
	"errors"
)

//go:generate mockgen -destination=mocks/cache.go . Store,Backend

// Well-known dataset names. Each holds the last successfully decoded payload
// in the provider's response shape.
const (
	CoinsKey     = "coins_cache.json"
	WatchlistKey = "watchlist_cache.json"
	// LookupKey holds the last id lookup; it never replaces the watchlist entry
	LookupKey    = "coins_lookup_cache.json"
	GlobalKey    = "global_cache.json"
	FavoritesKey = "favorites.json"
)

// ErrInvalidName is returned for dataset names that cannot be stored
var ErrInvalidName = errors.New("invalid cache entry name")

// Store persists named blobs. Writes replace the whole value, reads return
// the latest complete write.
type Store interface {
	// Get returns the stored value and whether it exists
	Get(ctx context.Context, name string) ([]byte, bool, error)

	// Set replaces the value stored under name
	Set(ctx context.Context, name string, data []byte) error

	// Delete removes the value; deleting a missing name is not an error
	Delete(ctx context.Context, name string) error
}

// Backend is the durable layer behind the in-memory cache
type Backend interface {
	Store

	// Ping verifies the backend is usable
	Ping(ctx context.Context) error

	// Close releases backend resources
	Close() error
}
