package encode

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arvok-systems/framevault/chunker"
	"github.com/arvok-systems/framevault/qr"
	"github.com/arvok-systems/framevault/resource"
	"github.com/arvok-systems/framevault/video"
)

// Coordinator buffers chunked text and, on BuildVideo, drives a QR
// generator and a video encoder to produce a container whose frames map
// 1:1 to buffered chunks. It is a state machine: idle -> buffered ->
// building -> idle. It is not internally synchronized; per spec.md §5 a
// caller needing concurrent access wraps it in external mutual exclusion.
type Coordinator struct {
	chunker    *chunker.Chunker
	qrGen      qr.Generator
	newEncoder func() video.Encoder
	controller *resource.Controller

	buffer    []chunker.Chunk
	messages  int
	busy      bool
	lastStats *Stats
}

// Option configures a Coordinator at construction.
type Option func(*Coordinator)

// WithController attaches a resource.Controller that throttles per-frame
// IO during BuildVideo. It does not change the single-threaded-per-call
// contract; it only paces this coordinator's own internal fan-out.
func WithController(c *resource.Controller) Option {
	return func(co *Coordinator) { co.controller = c }
}

// New creates a Coordinator. newEncoder is called once per BuildVideo call
// so that a fresh video.Encoder backs every build.
func New(c *chunker.Chunker, qrGen qr.Generator, newEncoder func() video.Encoder, optFns ...Option) *Coordinator {
	co := &Coordinator{chunker: c, qrGen: qrGen, newEncoder: newEncoder}
	for _, fn := range optFns {
		fn(co)
	}
	return co
}

// AddMessage chunks text and appends the result to the buffer. Each
// chunk's SequenceNumber is 0-based within this call's text; ParentIndex
// records which AddMessage call produced it.
func (co *Coordinator) AddMessage(text string) []chunker.Chunk {
	chunks := co.chunker.Split(text)
	parent := co.messages
	for i := range chunks {
		chunks[i].ParentIndex = &parent
	}
	co.buffer = append(co.buffer, chunks...)
	co.messages++
	return chunks
}

// BuildVideo validates preconditions, then renders and encodes every
// buffered chunk in order, where frameNumber equals the chunk's position
// in the buffer. On any failure after encoder Init it cancels the encoder
// and returns the original error; the buffer is left untouched either way
// so callers can retry after fixing the condition.
func (co *Coordinator) BuildVideo(ctx context.Context, path string, params BuildParams) (*Stats, error) {
	if co.busy {
		return nil, ErrBusy
	}
	if len(co.buffer) == 0 {
		return nil, ErrEmptyBuffer
	}

	caps := co.qrGen.Capabilities()
	if !caps.Supports(params.ECC) {
		return nil, ErrUnsupportedECC
	}
	for _, c := range co.buffer {
		if len(c.Content) > caps.MaxDataCapacity {
			return nil, fmt.Errorf("%w: chunk %d has %d bytes, capacity is %d", ErrChunkTooLarge, c.SequenceNumber, len(c.Content), caps.MaxDataCapacity)
		}
	}

	co.busy = true
	defer func() { co.busy = false }()

	buildID := uuid.New()
	enc := co.newEncoder()
	if err := enc.Init(video.Params{
		Width:   params.Width,
		Height:  params.Height,
		FPS:     params.FPS,
		Codec:   params.Codec,
		HWAccel: params.HWAccel,
	}); err != nil {
		return nil, err
	}

	start := time.Now()
	for i, chunk := range co.buffer {
		if err := ctx.Err(); err != nil {
			_ = enc.Cancel()
			return nil, err
		}
		if co.controller != nil {
			if err := co.controller.AcquireIO(ctx, params.Width*params.Height*3); err != nil {
				_ = enc.Cancel()
				return nil, err
			}
		}

		img, err := co.qrGen.Generate(chunk.Content, params.Version, params.ECC)
		if err != nil {
			_ = enc.Cancel()
			return nil, err
		}
		rgb := qr.ScaleToRGB(*img, params.Width, params.Height)
		if err := enc.AddFrame(ctx, rgb, i); err != nil {
			_ = enc.Cancel()
			return nil, err
		}
	}

	encStats, err := enc.Finalize(ctx, path)
	if err != nil {
		_ = enc.Cancel()
		return nil, err
	}

	co.lastStats = &Stats{
		BuildID:       buildID.String(),
		Encoder:       encStats,
		TotalWallTime: time.Since(start),
	}
	return co.lastStats, nil
}

// GetStats returns the statistics of the most recently completed build, or
// nil if none has completed yet.
func (co *Coordinator) GetStats() *Stats {
	return co.lastStats
}

// Clear discards the buffer and the last build's statistics.
func (co *Coordinator) Clear() {
	co.buffer = nil
	co.messages = 0
	co.lastStats = nil
}

// Busy reports whether a build is currently in progress.
func (co *Coordinator) Busy() bool { return co.busy }

// BufferLen reports how many chunks are currently buffered.
func (co *Coordinator) BufferLen() int { return len(co.buffer) }
