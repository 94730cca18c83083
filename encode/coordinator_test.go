package encode

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvok-systems/framevault/chunker"
	"github.com/arvok-systems/framevault/qr"
	"github.com/arvok-systems/framevault/video"
	"github.com/arvok-systems/framevault/video/kvid"
)

func newCoordinator() *Coordinator {
	c := chunker.New(chunker.WithChunkSize(40), chunker.WithOverlapSize(5))
	return New(c, qr.NewReferenceCodec(), func() video.Encoder { return kvid.New() })
}

func buildParams() BuildParams {
	return BuildParams{Width: 64, Height: 64, FPS: 10, Version: 1, ECC: qr.EccLow}
}

func TestAddMessageBuffersChunks(t *testing.T) {
	co := newCoordinator()
	chunks := co.AddMessage("hello world, this is a short message.")
	assert.NotEmpty(t, chunks)
	assert.Equal(t, len(chunks), co.BufferLen())
}

func TestBuildVideoRejectsEmptyBuffer(t *testing.T) {
	co := newCoordinator()
	_, err := co.BuildVideo(context.Background(), filepath.Join(t.TempDir(), "out.kvid"), buildParams())
	require.ErrorIs(t, err, ErrEmptyBuffer)
}

func TestBuildVideoProducesFrameCountMatchingBuffer(t *testing.T) {
	co := newCoordinator()
	co.AddMessage("one two three four five six seven eight nine ten")

	path := filepath.Join(t.TempDir(), "out.kvid")
	stats, err := co.BuildVideo(context.Background(), path, buildParams())
	require.NoError(t, err)
	assert.Equal(t, co.BufferLen(), stats.Encoder.TotalFrames)
	assert.NotEmpty(t, stats.BuildID)

	assert.Equal(t, stats, co.GetStats())

	dec := kvid.New()
	info, err := dec.GetInfo(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, co.BufferLen(), info.TotalFrames)
}

func TestBuildVideoRejectsUnsupportedECC(t *testing.T) {
	co := newCoordinator()
	co.AddMessage("short")
	params := buildParams()
	params.ECC = qr.EccLevel("nonsense")
	_, err := co.BuildVideo(context.Background(), filepath.Join(t.TempDir(), "out.kvid"), params)
	require.ErrorIs(t, err, ErrUnsupportedECC)
}

func TestBuildVideoFailsFastWithoutMutatingBufferOnOversizedChunk(t *testing.T) {
	co := newCoordinator()
	caps := qr.NewReferenceCodec().Capabilities()
	huge := make([]byte, caps.MaxDataCapacity+1)
	for i := range huge {
		huge[i] = 'x'
	}
	co.buffer = append(co.buffer, chunker.Chunk{Content: string(huge), SequenceNumber: 0})

	before := co.BufferLen()
	_, err := co.BuildVideo(context.Background(), filepath.Join(t.TempDir(), "out.kvid"), buildParams())
	require.ErrorIs(t, err, ErrChunkTooLarge)
	assert.Equal(t, before, co.BufferLen())
}

func TestClearResetsBufferAndStats(t *testing.T) {
	co := newCoordinator()
	co.AddMessage("some content to chunk up")
	_, err := co.BuildVideo(context.Background(), filepath.Join(t.TempDir(), "out.kvid"), buildParams())
	require.NoError(t, err)

	co.Clear()
	assert.Equal(t, 0, co.BufferLen())
	assert.Nil(t, co.GetStats())
}
