package cache

import (
	"context"
	"time"
)

// NoOp is a ReadWriter stub, it builds value on every GetOrCreate call.
type NoOp struct{}

var (
	_ ReadWriter = NoOp{}
	_ Getter     = NoOp{}
)

// Read does not find anything.
func (NoOp) Read(ctx context.Context, key string) (interface{}, error) {
	return nil, ErrCacheItemNotFound
}

// Write discards value.
func (NoOp) Write(ctx context.Context, key string, v interface{}) error {
	return nil
}

// GetOrCreate invokes factory, value is discarded and eviction callback is never called.
func (NoOp) GetOrCreate(ctx context.Context, key string, factory Factory, ttl time.Duration, onEvict EvictionCallback) (interface{}, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	return factory(ctx)
}
