// Package cache provides a byte-keyed cache façade with TTL, used to
// avoid re-crawling a space on every invocation. Two backends are
// provided: FileCache (hash-sharded JSON-on-disk) and NullCache
// (always-miss, the default).
package cache

import "context"

// Cache is the façade every backend implements.
type Cache interface {
	// Get returns the cached bytes for key. ok is false on a miss or an
	// expired entry.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key with the given time-to-live in seconds.
	// A non-positive ttlSeconds means "never expires".
	Set(ctx context.Context, key string, data []byte, ttlSeconds int) error
	// Delete removes key, if present. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error
}

// DefaultCrawlKey is the cache key the pipeline uses when the caller
// doesn't supply one: one entry per crawl root.
func DefaultCrawlKey(rootID string) string {
	return "crawl_descendants@" + rootID
}
