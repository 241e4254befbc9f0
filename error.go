package cache

// SentinelError is an error.
type SentinelError string

const (
	// ErrCacheItemNotFound indicates missing cache entry.
	ErrCacheItemNotFound = SentinelError("missing cache item")

	// ErrEmptyKey indicates empty cache key.
	ErrEmptyKey = SentinelError("empty cache key")

	// ErrInvalidTTL indicates negative time to live.
	ErrInvalidTTL = SentinelError("negative ttl")

	// ErrUnexpectedType indicates cached value of unexpected type.
	ErrUnexpectedType = SentinelError("unexpected cached value type")

	// ErrNothingToInvalidate indicates no caches were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}
