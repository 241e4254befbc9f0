// Package cache provides an in-memory cache with time-based expiration and eviction notifications.
//
// Features:
//
//  - Values are built with a factory on miss and served while fresh.
//  - Expiration is lazy: stale entries are evicted on access, no background janitor.
//  - Eviction callback is invoked once per removed entry, before a replacement becomes visible.
//  - Failed builds are never cached, the error is returned to the caller as is.
//  - Concurrent builds of the same key are collapsed into a single factory call.
//  - Allows logging, stats collection.
//  - Propagates context to allow better control of backend and application components.
//  - Allows mass expiration and removal (drop cache).
package cache
