package kvid

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/pierrec/lz4/v4"

	"github.com/arvok-systems/framevault/persistence"
	"github.com/arvok-systems/framevault/video"
)

type frameRecord struct {
	number    int
	timestamp uint64
	payload   []byte
}

// Encoder builds a KVID container. It buffers compressed frame payloads in
// memory and writes the complete file on Finalize, matching spec.md §5's
// write-to-temp-then-rename requirement for save-like operations.
type Encoder struct {
	params      video.Params
	initialized bool
	finalized   bool
	canceled    bool
	frames      []frameRecord
	startedAt   time.Time
}

var _ video.Encoder = (*Encoder)(nil)

// New returns an uninitialized Encoder. Call Init before AddFrame.
func New() *Encoder { return &Encoder{} }

func (e *Encoder) Init(params video.Params) error {
	if params.Width <= 0 || params.Height <= 0 || params.FPS <= 0 {
		return fmt.Errorf("kvid: invalid params %+v", params)
	}
	e.params = params
	e.initialized = true
	e.finalized = false
	e.canceled = false
	e.frames = nil
	e.startedAt = time.Now()
	return nil
}

func (e *Encoder) AddFrame(ctx context.Context, rgb []byte, frameNumber int) error {
	if !e.initialized || e.finalized {
		return fmt.Errorf("kvid: addFrame before init or after finalize")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	want := len(e.frames)
	if frameNumber != want {
		return fmt.Errorf("kvid: frames must arrive in strictly increasing order: expected %d, got %d", want, frameNumber)
	}
	expectedLen := e.params.Width * e.params.Height * 3
	if len(rgb) != expectedLen {
		return fmt.Errorf("kvid: frame %d has %d bytes, want %d", frameNumber, len(rgb), expectedLen)
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(rgb)))
	var compressor lz4.Compressor
	n, err := compressor.CompressBlock(rgb, compressed)
	if err != nil {
		return fmt.Errorf("kvid: compress frame %d: %w", frameNumber, err)
	}
	payload := make([]byte, 4+n)
	binary.BigEndian.PutUint32(payload, uint32(len(rgb)))
	copy(payload[4:], compressed[:n])

	timestampNanos := uint64(frameNumber) * uint64(time.Second) / uint64(e.params.FPS)
	e.frames = append(e.frames, frameRecord{number: frameNumber, timestamp: timestampNanos, payload: payload})
	return nil
}

func (e *Encoder) Finalize(ctx context.Context, path string) (video.Stats, error) {
	if !e.initialized || e.finalized {
		return video.Stats{}, fmt.Errorf("kvid: finalize before init or after finalize/cancel")
	}
	if err := ctx.Err(); err != nil {
		return video.Stats{}, err
	}

	var body bytes.Buffer
	body.WriteString(magic)
	body.WriteByte(formatVersion)
	body.WriteByte(codecTagKVID)
	body.WriteByte(pixelFormatRGB)
	body.WriteByte(0) // reserved

	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(e.params.Width))
	body.Write(u32[:])
	binary.BigEndian.PutUint32(u32[:], uint32(e.params.Height))
	body.Write(u32[:])
	binary.BigEndian.PutUint32(u32[:], uint32(e.params.FPS))
	body.Write(u32[:])
	binary.BigEndian.PutUint32(u32[:], uint32(len(e.frames)))
	body.Write(u32[:])

	for _, fr := range e.frames {
		binary.BigEndian.PutUint32(u32[:], uint32(fr.number))
		body.Write(u32[:])
		var u64 [8]byte
		binary.BigEndian.PutUint64(u64[:], fr.timestamp)
		body.Write(u64[:])
		binary.BigEndian.PutUint32(u32[:], uint32(len(fr.payload)))
		body.Write(u32[:])
		body.Write(fr.payload)
	}

	if err := persistence.AtomicWriteFile(path, func(f *os.File) error {
		_, err := f.Write(body.Bytes())
		return err
	}); err != nil {
		return video.Stats{}, fmt.Errorf("kvid: write %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return video.Stats{}, err
	}

	elapsed := time.Since(e.startedAt)
	duration := float64(len(e.frames)) / float64(e.params.FPS)
	var bitrate float64
	if duration > 0 {
		bitrate = float64(info.Size()) * 8 / duration
	}

	e.finalized = true
	return video.Stats{
		TotalFrames:     len(e.frames),
		FileSize:        info.Size(),
		DurationSeconds: duration,
		AverageBitrate:  bitrate,
		Codec:           "kvid",
		EncodingTimeMs:  elapsed.Milliseconds(),
	}, nil
}

// Cancel discards buffered frames. It never fails.
func (e *Encoder) Cancel() error {
	e.canceled = true
	e.initialized = false
	e.frames = nil
	return nil
}
