package kvid

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"github.com/pierrec/lz4/v4"

	"github.com/arvok-systems/framevault/video"
)

// Decoder reads a KVID container back.
type Decoder struct{}

var _ video.Decoder = (*Decoder)(nil)

// New returns a Decoder. It carries no state.
func New() *Decoder { return &Decoder{} }

type header struct {
	width, height, fps, frameCount int
}

func readHeader(data []byte) (header, int, error) {
	if len(data) < headerSize {
		return header{}, 0, fmt.Errorf("kvid: file shorter than header")
	}
	if string(data[:4]) != magic {
		return header{}, 0, fmt.Errorf("kvid: bad magic %q", data[:4])
	}
	off := 4
	off++ // version
	off++ // codec tag
	off++ // pixel format tag
	off++ // reserved
	width := int(binary.BigEndian.Uint32(data[off:]))
	off += 4
	height := int(binary.BigEndian.Uint32(data[off:]))
	off += 4
	fps := int(binary.BigEndian.Uint32(data[off:]))
	off += 4
	frameCount := int(binary.BigEndian.Uint32(data[off:]))
	off += 4
	return header{width: width, height: height, fps: fps, frameCount: frameCount}, off, nil
}

func (d *Decoder) GetInfo(ctx context.Context, path string) (video.Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return video.Info{}, fmt.Errorf("kvid: read %s: %w", path, err)
	}
	h, _, err := readHeader(data)
	if err != nil {
		return video.Info{}, err
	}
	duration := 0.0
	if h.fps > 0 {
		duration = float64(h.frameCount) / float64(h.fps)
	}
	return video.Info{
		TotalFrames: h.frameCount,
		Width:       h.width,
		Height:      h.height,
		FPS:         h.fps,
		Duration:    duration,
		Codec:       "kvid",
	}, nil
}

func (d *Decoder) ExtractFrames(ctx context.Context, path string, indices []int) ([]video.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("kvid: read %s: %w", path, err)
	}
	h, pos, err := readHeader(data)
	if err != nil {
		return nil, err
	}

	want := make(map[int]bool)
	all := indices == nil
	for _, i := range indices {
		want[i] = true
	}

	rgbSize := h.width * h.height * 3
	frames := make([]video.Frame, 0, h.frameCount)

	for i := 0; i < h.frameCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if pos+4+8+4 > len(data) {
			return nil, fmt.Errorf("kvid: truncated frame record %d", i)
		}
		number := int(binary.BigEndian.Uint32(data[pos:]))
		pos += 4
		pos += 8 // timestamp, unused by ExtractFrames
		payloadSize := int(binary.BigEndian.Uint32(data[pos:]))
		pos += 4
		if pos+payloadSize > len(data) {
			return nil, fmt.Errorf("kvid: truncated payload for frame %d", number)
		}
		payload := data[pos : pos+payloadSize]
		pos += payloadSize

		if !all && !want[number] {
			continue
		}
		if len(payload) < 4 {
			return nil, fmt.Errorf("kvid: malformed payload for frame %d", number)
		}
		uncompressedLen := int(binary.BigEndian.Uint32(payload))
		rgb := make([]byte, rgbSize)
		n, err := lz4.UncompressBlock(payload[4:], rgb)
		if err != nil {
			return nil, fmt.Errorf("kvid: decompress frame %d: %w", number, err)
		}
		if n != uncompressedLen || n != rgbSize {
			return nil, fmt.Errorf("kvid: frame %d decompressed to %d bytes, want %d", number, n, rgbSize)
		}
		frames = append(frames, video.Frame{Number: number, RGB: rgb, Width: h.width, Height: h.height})
	}

	sort.Slice(frames, func(i, j int) bool { return frames[i].Number < frames[j].Number })
	return frames, nil
}
