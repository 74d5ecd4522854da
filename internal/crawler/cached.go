package crawler

import (
	"context"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/cache"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/codec"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/entity"
)

// CacheOptions configures CrawlWithCache.
type CacheOptions struct {
	Cache        cache.Cache
	Key          string // defaults to cache.DefaultCrawlKey(rootID) if empty
	TTLSeconds   int
	ForceRefresh bool
}

// CrawlWithCache wraps Crawl with a fetch-through cache: a hit
// deserializes and returns cached entities without touching the
// fetcher; a miss (or ForceRefresh) crawls and stores the result before
// returning it. A cancelled crawl never writes to the cache, since the
// node pool it built is discarded incomplete.
func CrawlWithCache(ctx context.Context, fetcher DescendantsFetcher, rootID string, rootType RootType, opts Options, cacheOpts CacheOptions) ([]entity.Entity, error) {
	key := cacheOpts.Key
	if key == "" {
		key = cache.DefaultCrawlKey(rootID)
	}

	if !cacheOpts.ForceRefresh && cacheOpts.Cache != nil {
		// A backend error (e.g. a filesystem hiccup reading the entry) or a
		// corrupt/schema-incompatible payload both degrade to a cache miss
		// rather than failing the crawl; only a live fetcher failure below
		// is fatal.
		if data, ok, err := cacheOpts.Cache.Get(ctx, key); err == nil && ok {
			if entities, dErr := codec.DeserializeEntities(data); dErr == nil {
				return entities, nil
			}
		}
	}

	entities, err := Crawl(ctx, fetcher, rootID, rootType, opts)
	if err != nil {
		return nil, err
	}

	if cacheOpts.Cache != nil {
		data, err := codec.SerializeEntities(entities)
		if err != nil {
			return nil, err
		}
		if err := cacheOpts.Cache.Set(ctx, key, data, cacheOpts.TTLSeconds); err != nil {
			return nil, err
		}
	}

	return entities, nil
}
