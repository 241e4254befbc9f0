package cache

import (
	"context"
	"time"
)

// detachedContext keeps values of parent context, but ignores its cancellation and deadline.
//
// It is used for shared population, so that a canceled caller does not fail other callers waiting for the value.
type detachedContext struct {
	ctx context.Context
}

func (dctx detachedContext) Deadline() (deadline time.Time, ok bool) {
	return time.Time{}, false
}

func (dctx detachedContext) Done() <-chan struct{} {
	return nil
}

func (dctx detachedContext) Err() error {
	return nil
}

func (dctx detachedContext) Value(key interface{}) interface{} {
	return dctx.ctx.Value(key)
}
