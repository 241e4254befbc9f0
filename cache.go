package cache

import (
	"context"
	"time"
)

// DefaultTTL indicates that configured MemoryConfig.TimeToLive should be used for entry expiration.
const DefaultTTL = time.Duration(0)

// Factory builds a value to populate cache on a miss.
type Factory func(ctx context.Context) (interface{}, error)

// EvictionCallback is notified after an entry is removed from cache.
type EvictionCallback func(ctx context.Context, key string, value interface{}, reason EvictionReason)

// EvictionReason describes why an entry was removed.
type EvictionReason int

// Eviction reasons.
const (
	// Expired means entry outlived its TTL and was found on access.
	Expired EvictionReason = iota + 1
	// Replaced means entry was overwritten with a new value.
	Replaced
	// Removed means entry was deleted explicitly.
	Removed
)

func (r EvictionReason) String() string {
	switch r {
	case Expired:
		return "Expired"
	case Replaced:
		return "Replaced"
	case Removed:
		return "Removed"
	default:
		return "Unknown"
	}
}

// Reader reads from cache.
type Reader interface {
	// Read returns cached value or ErrCacheItemNotFound.
	// Expired entries are evicted on read and reported as not found.
	Read(ctx context.Context, key string) (interface{}, error)
}

// Writer writes to cache.
type Writer interface {
	// Write stores value in cache with a given key.
	Write(ctx context.Context, key string, value interface{}) error
}

// ReadWriter reads from and writes to cache.
type ReadWriter interface {
	Reader
	Writer
}

// Deleter removes cache entries.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// Getter returns cached value or populates cache with factory result.
type Getter interface {
	GetOrCreate(ctx context.Context, key string, factory Factory, ttl time.Duration, onEvict EvictionCallback) (interface{}, error)
}

// Entry is cached value with expiration.
type Entry interface {
	Value() interface{}
	ExpireAt() time.Time
}

// Walker calls function for every live entry in cache and fails on first error returned by that function.
//
// Count of processed entries is returned.
type Walker interface {
	Walk(func(key string, entry Entry) error) (int, error)
}
