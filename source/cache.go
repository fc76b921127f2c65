package source

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of datasets a Cache holds.
const DefaultCacheSize = 64

// Cache keeps recently loaded datasets keyed by caller-chosen names.
// It is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[string, *Dataset]
}

// NewCache returns a Cache holding at most size datasets.
// A size <= 0 selects DefaultCacheSize.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, *Dataset](size)
	if err != nil {
		return nil, err
	}

	return &Cache{entries: entries}, nil
}

// Wrap returns a Source that serves key from the cache and falls back to src.
func (c *Cache) Wrap(key string, src Source) Source {
	return &cached{cache: c, key: key, src: src}
}

// Len reports how many datasets are cached.
func (c *Cache) Len() int { return c.entries.Len() }

// Purge drops every cached dataset.
func (c *Cache) Purge() { c.entries.Purge() }

type cached struct {
	cache *Cache
	key   string
	src   Source
}

func (s *cached) Load(ctx context.Context) (*Dataset, error) {
	if ds, ok := s.cache.entries.Get(s.key); ok {
		return ds.Clone(), nil
	}
	if s.src == nil {
		return nil, ErrNilSource
	}
	ds, err := s.src.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.entries.Add(s.key, ds.Clone())

	return ds, nil
}
