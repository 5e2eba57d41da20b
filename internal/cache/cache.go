// Package cache provides a small generic LRU used to memoize derived views
// (chart series) keyed by ledger revision.
package cache

// Cache defines a generic cache interface
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache
	Get(key K) (V, bool)

	// Set stores a value in the cache
	Set(key K, value V)

	// Delete removes a key from the cache
	Delete(key K)

	// Size returns the current number of items in the cache
	Size() int
}

// Stats counts lookups since creation.
type Stats struct {
	Hits   uint64
	Misses uint64
}
