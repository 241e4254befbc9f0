package cache_test

import (
	"sync"
	"time"
)

// clock is a manually advanced time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type eviction struct {
	key    string
	value  interface{}
	reason string
}

// evictions records eviction notifications.
type evictions struct {
	mu   sync.Mutex
	list []eviction
}

func (e *evictions) add(key string, value interface{}, reason string) {
	e.mu.Lock()
	e.list = append(e.list, eviction{key: key, value: value, reason: reason})
	e.mu.Unlock()
}

func (e *evictions) get() []eviction {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]eviction(nil), e.list...)
}
