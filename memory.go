package cache

import (
	"context"
	"math/rand"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
	"golang.org/x/sync/singleflight"
)

// MemoryConfig controls in-memory cache instance.
type MemoryConfig struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Name is cache instance name, used in stats and logging.
	Name string

	// TimeToLive is delay before entry expiration when DefaultTTL is requested, default 5m.
	TimeToLive time.Duration

	// ExpirationJitter is a fraction of TTL to randomize, disabled by default, values above 1 are reduced to 1.
	// If enabled, entry TTL will be randomly altered in bounds of ±(ExpirationJitter * TTL / 2).
	ExpirationJitter float64

	// OnEvict is called for removed entries that have no own eviction callback, can be nil.
	OnEvict EvictionCallback

	// TimeNow returns current time, default time.Now.
	TimeNow func() time.Time
}

var (
	_ ReadWriter = &Memory{}
	_ Deleter    = &Memory{}
	_ Getter     = &Memory{}
	_ Walker     = &Memory{}
)

// Memory is an in-memory cache with lazy expiration.
//
// Please use NewMemory to create instance.
type Memory struct {
	buckets [shards]bucket
	flight  singleflight.Group

	config MemoryConfig
	log    ctxd.Logger
	stat   stats.Tracker
	now    func() time.Time
}

// NewMemory creates an instance of in-memory cache with optional configuration.
func NewMemory(cfg ...MemoryConfig) *Memory {
	config := MemoryConfig{}

	if len(cfg) >= 1 {
		config = cfg[0]
	}

	if config.TimeToLive == 0 {
		config.TimeToLive = 5 * time.Minute
	}

	if config.ExpirationJitter > 1 {
		config.ExpirationJitter = 1
	}

	if config.TimeNow == nil {
		config.TimeNow = time.Now
	}

	c := &Memory{
		config: config,
		log:    config.Logger,
		stat:   config.Stats,
		now:    config.TimeNow,
	}

	if c.log == nil {
		c.log = ctxd.NoOpLogger{}
	}

	if c.stat == nil {
		c.stat = stats.NoOp{}
	}

	for i := range c.buckets {
		c.buckets[i].data = make(map[string]*entry)
		c.buckets[i].locks = make(map[string]*keyLock)
	}

	return c
}

// GetOrCreate returns live cached value or stores and returns the result of factory.
//
// Expired entry is evicted with its callback notified before factory is invoked.
// Factory error is returned unchanged and nothing is stored.
// Concurrent calls for the same key share a single factory invocation, factory receives
// a context that is not canceled with the caller's one, while each caller stops waiting
// when its own context is done.
// Zero ttl means MemoryConfig.TimeToLive, nil onEvict means MemoryConfig.OnEvict.
//
// Eviction callback must not write or populate the key that is being evicted.
func (c *Memory) GetOrCreate(
	ctx context.Context,
	key string,
	factory Factory,
	ttl time.Duration,
	onEvict EvictionCallback,
) (interface{}, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	if ttl < 0 {
		return nil, ErrInvalidTTL
	}

	read := !SkipRead(ctx)

	if read {
		if val, found := c.peek(ctx, key); found {
			c.stat.Add(ctx, MetricHit, 1, "name", c.config.Name)

			return val, nil
		}
	}

	c.stat.Add(ctx, MetricMiss, 1, "name", c.config.Name)

	res := c.flight.DoChan(key, func() (interface{}, error) {
		return c.populate(detachedContext{ctx: ctx}, key, factory, ttl, onEvict, read)
	})

	select {
	case r := <-res:
		return r.Val, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// populate evicts expired entry and builds a new one while holding key lock.
func (c *Memory) populate(
	ctx context.Context,
	key string,
	factory Factory,
	ttl time.Duration,
	onEvict EvictionCallback,
	read bool,
) (interface{}, error) {
	b := c.bucket(key)

	unlock := b.lockKey(key)
	defer unlock()

	// Previous flight could have stored the value after peek.
	if read {
		if val, found := c.load(ctx, b, key); found {
			return val, nil
		}
	}

	return c.build(ctx, b, key, factory, ttl, onEvict)
}

func (c *Memory) build(
	ctx context.Context,
	b *bucket,
	key string,
	factory Factory,
	ttl time.Duration,
	onEvict EvictionCallback,
) (interface{}, error) {
	defer func() {
		c.stat.Add(ctx, MetricBuild, 1, "name", c.config.Name)
	}()

	c.log.Debug(ctx, "building cache value", "name", c.config.Name, "key", key)

	val, err := factory(ctx)
	if err != nil {
		c.stat.Add(ctx, MetricFailed, 1, "name", c.config.Name)
		c.log.Warn(ctx, "failed to build cache value",
			"error", err,
			"name", c.config.Name,
			"key", key)

		return nil, err
	}

	c.put(ctx, b, key, val, ttl, onEvict)

	return val, nil
}

// Read gets live value, expired entry is evicted and reported as ErrCacheItemNotFound.
func (c *Memory) Read(ctx context.Context, key string) (interface{}, error) {
	if SkipRead(ctx) {
		return nil, ErrCacheItemNotFound
	}

	val, found := c.peek(ctx, key)

	if !found && c.stored(key) {
		b := c.bucket(key)
		unlock := b.lockKey(key)
		val, found = c.load(ctx, b, key)
		unlock()
	}

	if !found {
		c.stat.Add(ctx, MetricMiss, 1, "name", c.config.Name)

		return nil, ErrCacheItemNotFound
	}

	c.stat.Add(ctx, MetricHit, 1, "name", c.config.Name)

	return val, nil
}

// peek returns live value without mutating cache.
func (c *Memory) peek(ctx context.Context, key string) (interface{}, bool) {
	b := c.bucket(key)

	b.RLock()
	e, found := b.data[key]
	b.RUnlock()

	if !found || e.expired(c.now()) {
		c.log.Debug(ctx, "cache miss", "name", c.config.Name, "key", key)

		return nil, false
	}

	c.log.Debug(ctx, "cache hit", "name", c.config.Name, "key", key)

	return e.val, true
}

func (c *Memory) stored(key string) bool {
	b := c.bucket(key)

	b.RLock()
	_, found := b.data[key]
	b.RUnlock()

	return found
}

// load returns live value and evicts expired entry, key lock must be held.
func (c *Memory) load(ctx context.Context, b *bucket, key string) (interface{}, bool) {
	b.Lock()
	e, found := b.data[key]

	if !found {
		b.Unlock()

		return nil, false
	}

	if !e.expired(c.now()) {
		b.Unlock()

		return e.val, true
	}

	delete(b.data, key)
	b.Unlock()

	c.log.Debug(ctx, "cache key expired", "name", c.config.Name, "key", key, "expireAt", e.exp)
	c.stat.Add(ctx, MetricExpired, 1, "name", c.config.Name)
	c.notify(ctx, evicted{key: key, entry: e, reason: Expired})

	return nil, false
}

// Write sets value with TTL from context or MemoryConfig.TimeToLive.
func (c *Memory) Write(ctx context.Context, key string, val interface{}) error {
	if key == "" {
		return ErrEmptyKey
	}

	ttl := TTL(ctx)
	if ttl < 0 {
		return ErrInvalidTTL
	}

	b := c.bucket(key)

	unlock := b.lockKey(key)
	defer unlock()

	c.put(ctx, b, key, val, ttl, nil)

	return nil
}

// put stores a new entry, previous entry is evicted and notified before the new one becomes visible.
// Key lock must be held.
func (c *Memory) put(ctx context.Context, b *bucket, key string, val interface{}, ttl time.Duration, onEvict EvictionCallback) {
	if ttl == DefaultTTL {
		ttl = c.config.TimeToLive
	}

	if c.config.ExpirationJitter > 0 {
		ttl += time.Duration(float64(ttl) * c.config.ExpirationJitter * (rand.Float64() - 0.5)) // nolint:gosec
	}

	b.Lock()
	prev, found := b.data[key]
	delete(b.data, key)
	b.Unlock()

	if found {
		reason := Replaced
		if prev.expired(c.now()) {
			reason = Expired
		}

		c.notify(ctx, evicted{key: key, entry: prev, reason: reason})
	}

	now := c.now()

	b.Lock()
	b.data[key] = &entry{val: val, created: now, exp: now.Add(ttl), onEvict: onEvict}
	b.Unlock()

	c.log.Debug(ctx, "wrote to cache", "name", c.config.Name, "key", key, "ttl", ttl)
	c.stat.Add(ctx, MetricWrite, 1, "name", c.config.Name)
}

// Delete removes entry notifying eviction callback with Removed reason.
func (c *Memory) Delete(ctx context.Context, key string) error {
	if !c.remove(ctx, key) {
		return ErrCacheItemNotFound
	}

	return nil
}

func (c *Memory) remove(ctx context.Context, key string) bool {
	b := c.bucket(key)

	unlock := b.lockKey(key)
	defer unlock()

	b.Lock()
	e, found := b.data[key]
	delete(b.data, key)
	b.Unlock()

	if found {
		c.notify(ctx, evicted{key: key, entry: e, reason: Removed})
	}

	return found
}

// ExpireAll marks all entries as expired, they are evicted on next access.
func (c *Memory) ExpireAll() {
	now := c.now()

	for i := range c.buckets {
		b := &c.buckets[i]

		b.Lock()
		for k, e := range b.data {
			exp := *e
			exp.exp = now
			b.data[k] = &exp
		}
		b.Unlock()
	}
}

// RemoveAll deletes all entries notifying eviction callbacks with Removed reason.
func (c *Memory) RemoveAll(ctx context.Context) {
	for i := range c.buckets {
		b := &c.buckets[i]

		b.RLock()
		keys := make([]string, 0, len(b.data))
		for k := range b.data {
			keys = append(keys, k)
		}
		b.RUnlock()

		for _, k := range keys {
			c.remove(ctx, k)
		}
	}
}

// Len returns number of stored entries, including expired ones that were not accessed yet.
func (c *Memory) Len() int {
	cnt := 0

	for i := range c.buckets {
		b := &c.buckets[i]

		b.RLock()
		cnt += len(b.data)
		b.RUnlock()
	}

	return cnt
}

// Walk walks live cached entries.
func (c *Memory) Walk(walkFn func(key string, e Entry) error) (int, error) {
	n := 0
	now := c.now()

	for i := range c.buckets {
		b := &c.buckets[i]

		b.RLock()
		snapshot := make(map[string]*entry, len(b.data))
		for k, e := range b.data {
			snapshot[k] = e
		}
		b.RUnlock()

		for k, e := range snapshot {
			if e.expired(now) {
				continue
			}

			if err := walkFn(k, e); err != nil {
				return n, err
			}

			n++
		}
	}

	return n, nil
}

func (c *Memory) notify(ctx context.Context, ev evicted) {
	c.stat.Add(ctx, MetricEvict, 1, "name", c.config.Name)
	c.log.Debug(ctx, "cache entry evicted",
		"name", c.config.Name,
		"key", ev.key,
		"reason", ev.reason.String(),
		"ttl", ev.entry.exp.Sub(ev.entry.created))

	cb := ev.entry.onEvict
	if cb == nil {
		cb = c.config.OnEvict
	}

	if cb != nil {
		cb(ctx, ev.key, ev.entry.val, ev.reason)
	}
}
