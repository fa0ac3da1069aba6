// Package cache stores fetched page renderings so closely spaced pipeline
// triggers do not hammer the shared reader service.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/silverhaven/eventscout/internal/model"
)

// Cache is the interface over the fetch-content cache layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a source URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "eventscout:v1:" + hex.EncodeToString(hash[:])
}

// New builds the cache described by cfg: a memory cache, optionally backed
// by a disk layer when a directory is configured. Returns nil when caching
// is disabled.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir != "" {
		return NewLayered(cfg.TTL, cfg.Dir, cfg.TTL)
	}
	return NewMemory(cfg.TTL, 10*time.Minute)
}
