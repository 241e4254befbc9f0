package cache

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

const shards = 64

// entry is a cache entry, immutable once stored.
type entry struct {
	val     interface{}
	created time.Time
	exp     time.Time
	onEvict EvictionCallback
}

func (e *entry) Value() interface{} {
	return e.val
}

func (e *entry) ExpireAt() time.Time {
	return e.exp
}

func (e *entry) expired(now time.Time) bool {
	return !now.Before(e.exp)
}

type bucket struct {
	sync.RWMutex
	data  map[string]*entry
	locks map[string]*keyLock
}

type evicted struct {
	key    string
	entry  *entry
	reason EvictionReason
}

func (c *Memory) bucket(key string) *bucket {
	return &c.buckets[xxhash.Sum64String(key)%shards]
}

type keyLock struct {
	sync.Mutex
	refs int
}

// lockKey serializes mutations of a key and returns unlock function.
func (b *bucket) lockKey(key string) func() {
	b.Lock()
	kl, ok := b.locks[key]
	if !ok {
		kl = &keyLock{}
		b.locks[key] = kl
	}
	kl.refs++
	b.Unlock()

	kl.Lock()

	return func() {
		kl.Unlock()

		b.Lock()
		kl.refs--
		if kl.refs == 0 {
			delete(b.locks, key)
		}
		b.Unlock()
	}
}
