package decode

import (
	"context"
	"fmt"

	"github.com/arvok-systems/framevault/cache"
	"github.com/arvok-systems/framevault/qr"
	"github.com/arvok-systems/framevault/video"
)

// Coordinator reverses the encode pipeline: it reads a container's frames
// and decodes each one's QR payload. Per-frame decode failures are
// silently dropped (best-effort recovery); catastrophic failures (missing
// file, no video track) surface to the caller. It is not internally
// synchronized, matching spec.md §5.
type Coordinator struct {
	videoDec video.Decoder
	qrDec    qr.Decoder
	cache    cache.BlockCache
}

// Option configures a Coordinator at construction.
type Option func(*Coordinator)

// WithCache attaches a cache.BlockCache keyed by (containerPath,
// frameNumber) holding decoded text, so repeated retrieval against the same
// container skips the QR decode of frames already seen. Frames are still
// extracted from the container on every call.
func WithCache(c cache.BlockCache) Option {
	return func(co *Coordinator) { co.cache = c }
}

// New creates a Coordinator backed by the given video decoder and QR
// decoder.
func New(videoDec video.Decoder, qrDec qr.Decoder, optFns ...Option) *Coordinator {
	co := &Coordinator{videoDec: videoDec, qrDec: qrDec}
	for _, fn := range optFns {
		fn(co)
	}
	return co
}

// Retrieve decodes every frame of the container at path.
func (co *Coordinator) Retrieve(ctx context.Context, path string) ([]string, error) {
	return co.RetrieveFrames(ctx, path, nil)
}

// RetrieveFrames decodes the named frames, or every frame if indices is
// nil. Individual frame decode failures are dropped; the returned slice
// holds only successful decodes, in the order they were decoded.
func (co *Coordinator) RetrieveFrames(ctx context.Context, path string, indices []int) ([]string, error) {
	if _, err := co.videoDec.GetInfo(ctx, path); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	frames, err := co.videoDec.ExtractFrames(ctx, path, indices)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	results := make([]string, 0, len(frames))
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		key := cache.CacheKey{ContainerPath: path, FrameNumber: f.Number}
		if co.cache != nil {
			if cached, ok := co.cache.Get(ctx, key); ok {
				results = append(results, string(cached))
				continue
			}
		}

		img := qr.Luma(f.RGB, f.Width, f.Height)
		text, err := co.qrDec.Decode(img)
		if err != nil {
			continue // best-effort: drop this frame silently
		}

		if co.cache != nil {
			co.cache.Set(ctx, key, []byte(text))
		}
		results = append(results, text)
	}

	return results, nil
}
