package cache

import "context"

// CacheKey identifies one decoded video frame's payload, keyed the way
// decode.Coordinator's retrieveFrames addresses frames: by container and
// frame number, so that repeated retrieval against the same container
// reuses the already-decoded payload text of a frame.
type CacheKey struct {
	ContainerPath string
	FrameNumber   int
}

// BlockCache is a byte-oriented cache for immutable blocks.
// Returned slices must be treated as read-only.
type BlockCache interface {
	// Get returns a cached block. ok=false if missing.
	Get(ctx context.Context, key CacheKey) (b []byte, ok bool)
	// Set caches a block. Implementations may copy or retain; caller must treat b as immutable.
	Set(ctx context.Context, key CacheKey, b []byte)
}

// AdmissionPolicy decides whether a value should be cached.
type AdmissionPolicy interface {
	Admit(key CacheKey, sizeBytes int) bool
}
