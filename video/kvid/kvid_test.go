package kvid

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvok-systems/framevault/video"
)

func makeRGB(w, h int, fill byte) []byte {
	rgb := make([]byte, w*h*3)
	for i := range rgb {
		rgb[i] = fill
	}
	return rgb
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ctx := context.Background()
	enc := New()
	require.NoError(t, enc.Init(video.Params{Width: 8, Height: 8, FPS: 30}))

	for i := 0; i < 3; i++ {
		require.NoError(t, enc.AddFrame(ctx, makeRGB(8, 8, byte(i*10)), i))
	}

	path := filepath.Join(t.TempDir(), "out.kvid")
	stats, err := enc.Finalize(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalFrames)
	assert.Equal(t, "kvid", stats.Codec)
	assert.Greater(t, stats.FileSize, int64(0))

	dec := New()
	info, err := dec.GetInfo(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 3, info.TotalFrames)
	assert.Equal(t, 8, info.Width)

	frames, err := dec.ExtractFrames(ctx, path, nil)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	for i, f := range frames {
		assert.Equal(t, i, f.Number)
		assert.Equal(t, makeRGB(8, 8, byte(i*10)), f.RGB)
	}
}

func TestExtractFramesSubset(t *testing.T) {
	ctx := context.Background()
	enc := New()
	require.NoError(t, enc.Init(video.Params{Width: 4, Height: 4, FPS: 10}))
	for i := 0; i < 5; i++ {
		require.NoError(t, enc.AddFrame(ctx, makeRGB(4, 4, byte(i)), i))
	}
	path := filepath.Join(t.TempDir(), "out.kvid")
	_, err := enc.Finalize(ctx, path)
	require.NoError(t, err)

	dec := New()
	frames, err := dec.ExtractFrames(ctx, path, []int{1, 3})
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, 1, frames[0].Number)
	assert.Equal(t, 3, frames[1].Number)
}

func TestAddFrameRejectsOutOfOrder(t *testing.T) {
	ctx := context.Background()
	enc := New()
	require.NoError(t, enc.Init(video.Params{Width: 4, Height: 4, FPS: 10}))
	err := enc.AddFrame(ctx, makeRGB(4, 4, 0), 1)
	require.Error(t, err)
}

func TestCancelDiscardsFrames(t *testing.T) {
	ctx := context.Background()
	enc := New()
	require.NoError(t, enc.Init(video.Params{Width: 4, Height: 4, FPS: 10}))
	require.NoError(t, enc.AddFrame(ctx, makeRGB(4, 4, 0), 0))
	require.NoError(t, enc.Cancel())

	_, err := enc.Finalize(ctx, filepath.Join(t.TempDir(), "out.kvid"))
	require.Error(t, err)
}
