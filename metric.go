package cache

// Metric names reported to stats.Tracker, labeled with "name" of cache instance.
const (
	MetricHit     = "cache_hit"
	MetricMiss    = "cache_miss"
	MetricExpired = "cache_expired"
	MetricWrite   = "cache_write"
	MetricBuild   = "cache_build"
	MetricFailed  = "cache_failed"
	MetricEvict   = "cache_evict"
)
