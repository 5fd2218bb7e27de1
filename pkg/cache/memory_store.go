package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is the in-process fallback used when no redis is configured.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(defaultTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(defaultTTL, 10*time.Minute),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	if x, found := s.cache.Get(key); found {
		return x.(string), true, nil
	}
	return "", false, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	s.cache.Set(key, value, ttl)
	return nil
}
