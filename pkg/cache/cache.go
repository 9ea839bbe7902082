// Package cache stores verified trees and rendered diagrams between runs.
//
// After a successful verification the CLI and the API keep the linked tree
// under a key derived from the canvas snapshot and the chosen root, so a
// later insert can start from the last known good tree without verifying
// the canvas again.
//
// Backends:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the API server
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/rbcheck/pkg/io"
	"github.com/matzehuels/rbcheck/pkg/observability"
	"github.com/matzehuels/rbcheck/pkg/rbtree"
)

// TTLs for cached entries.
const (
	TreeTTL   = 7 * 24 * time.Hour
	RenderTTL = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LoadTree returns the tree cached under key.
// A corrupt entry is deleted and reported as a miss.
func LoadTree(ctx context.Context, c Cache, key string) (*rbtree.Tree, bool, error) {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "tree")
		return nil, false, nil
	}
	t, err := io.DecodeTree(data)
	if err != nil {
		_ = c.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "tree")
		return nil, false, nil
	}
	observability.Cache().OnCacheHit(ctx, "tree")
	return t, true, nil
}

// StoreTree caches t under key with [TreeTTL].
func StoreTree(ctx context.Context, c Cache, key string, t *rbtree.Tree) error {
	data, err := io.EncodeTree(t)
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, data, TreeTTL); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, "tree", len(data))
	return nil
}

// NullCache never stores anything. It backs --no-cache.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
