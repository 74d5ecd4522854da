package cache

import "context"

// NullCache is a no-op Cache: every Get misses, Set and Delete succeed
// without storing anything. It is the default when the CLI is run
// without --cache-dir.
type NullCache struct{}

func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(ctx context.Context, key string, data []byte, ttlSeconds int) error {
	return nil
}
func (NullCache) Delete(ctx context.Context, key string) error { return nil }

var _ Cache = NullCache{}
