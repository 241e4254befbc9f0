package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bool64/ctxd"
)

// Expirer marks all cached entries as expired.
type Expirer interface {
	ExpireAll()
}

// Invalidator is a registry of cache expiration triggers.
type Invalidator struct {
	sync.Mutex

	// SkipInterval defines minimal duration between two cache invalidations (flood protection), default 15s.
	SkipInterval time.Duration

	// Callbacks contains a list of functions to call on invalidate.
	Callbacks []func()

	// TimeNow returns current time, default time.Now.
	TimeNow func() time.Time

	lastRun time.Time
}

// Register adds caches to expire on invalidate.
func (i *Invalidator) Register(caches ...Expirer) {
	i.Lock()
	defer i.Unlock()

	for _, c := range caches {
		i.Callbacks = append(i.Callbacks, c.ExpireAll)
	}
}

// Invalidate triggers cache expiration.
func (i *Invalidator) Invalidate(ctx context.Context) error {
	i.Lock()
	defer i.Unlock()

	if len(i.Callbacks) == 0 {
		return ErrNothingToInvalidate
	}

	if i.SkipInterval == 0 {
		i.SkipInterval = 15 * time.Second
	}

	now := time.Now
	if i.TimeNow != nil {
		now = i.TimeNow
	}

	if !i.lastRun.IsZero() && now().Sub(i.lastRun) < i.SkipInterval {
		return ctxd.WrapError(ctx, ErrAlreadyInvalidated, "invalidation skipped",
			"lastRun", i.lastRun.String(),
			"skipInterval", i.SkipInterval.String())
	}

	i.lastRun = now()

	for _, cb := range i.Callbacks {
		cb()
	}

	return nil
}
