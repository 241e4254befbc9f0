package cache

import (
	"context"
	"fmt"
	"time"
)

// GetOrCreateOf is a typed version of Getter.GetOrCreate.
//
// ErrUnexpectedType is returned if cached value has a type other than V.
func GetOrCreateOf[V any](
	ctx context.Context,
	c Getter,
	key string,
	factory func(ctx context.Context) (V, error),
	ttl time.Duration,
	onEvict EvictionCallback,
) (V, error) {
	var zero V

	val, err := c.GetOrCreate(ctx, key, func(ctx context.Context) (interface{}, error) {
		v, err := factory(ctx)

		return v, err
	}, ttl, onEvict)
	if err != nil {
		return zero, err
	}

	v, ok := val.(V)
	if !ok {
		return zero, fmt.Errorf("%w: %T for key %q", ErrUnexpectedType, val, key)
	}

	return v, nil
}
