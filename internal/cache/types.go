// Package cache provides a byte-block cache used internally by blobstore to
// avoid re-fetching immutable ranges of remote blobs. It is distinct from
// the root-level cache package, which caches decoded chunk text keyed by
// container path and frame number.
package cache

import "context"

// CacheKind separates key spaces so a single cache instance can serve more
// than one kind of caller without key collisions.
type CacheKind uint8

const (
	CacheKindUnknown CacheKind = iota
	// CacheKindBlob marks entries holding blobstore byte-range blocks.
	CacheKindBlob
)

// CacheKey identifies one cached block. Offset is a block index (byte
// offset / blockSize), not a byte offset.
type CacheKey struct {
	Kind   CacheKind
	Path   string
	Offset uint64
}

// BlockCache is a byte-oriented cache for immutable blocks. Returned slices
// must be treated as read-only.
type BlockCache interface {
	// Get returns a cached block. ok=false if missing.
	Get(ctx context.Context, key CacheKey) (b []byte, ok bool)
	// Set caches a block. Implementations may copy or retain; the caller
	// must treat b as immutable afterward.
	Set(ctx context.Context, key CacheKey, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key CacheKey) bool)
	// Close releases any resources held by the cache.
	Close() error
	// Stats returns cumulative hit/miss counts.
	Stats() (hits, misses int64)
}
