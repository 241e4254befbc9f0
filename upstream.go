package cache

import (
	"context"
	"errors"

	bcache "github.com/bool64/cache"
)

var _ bcache.ReadWriter = Upstream{}

// Upstream exposes Memory as github.com/bool64/cache backend with byte slice keys.
type Upstream struct {
	mem *Memory
}

// NewUpstream creates bool64/cache compatible backend on top of Memory.
func NewUpstream(mem *Memory) Upstream {
	return Upstream{mem: mem}
}

// Read gets live value or bcache.ErrNotFound.
func (u Upstream) Read(ctx context.Context, key []byte) (interface{}, error) {
	if bcache.SkipRead(ctx) {
		return nil, bcache.ErrNotFound
	}

	val, err := u.mem.Read(ctx, string(key))
	if errors.Is(err, ErrCacheItemNotFound) {
		return nil, bcache.ErrNotFound
	}

	return val, err
}

// Write stores value, negative TTL from context skips the write.
func (u Upstream) Write(ctx context.Context, key []byte, value interface{}) error {
	ttl := bcache.TTL(ctx)
	if ttl < 0 {
		return nil
	}

	if ttl == bcache.DefaultTTL {
		ttl = DefaultTTL
	}

	return u.mem.Write(WithTTL(ctx, ttl), string(key), value)
}

// Delete removes value or returns bcache.ErrNotFound.
func (u Upstream) Delete(ctx context.Context, key []byte) error {
	err := u.mem.Delete(ctx, string(key))
	if errors.Is(err, ErrCacheItemNotFound) {
		return bcache.ErrNotFound
	}

	return err
}
