package ffmpeg

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arvok-systems/framevault/video"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	if !Available() {
		t.Skip("ffmpeg not found on PATH")
	}

	ctx := context.Background()
	enc := New()
	require.NoError(t, enc.Init(video.Params{Width: 16, Height: 16, FPS: 10}))
	for i := 0; i < 3; i++ {
		rgb := make([]byte, 16*16*3)
		require.NoError(t, enc.AddFrame(ctx, rgb, i))
	}

	path := filepath.Join(t.TempDir(), "out.mp4")
	stats, err := enc.Finalize(ctx, path)
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalFrames)

	dec := New()
	info, err := dec.GetInfo(ctx, path)
	require.NoError(t, err)
	require.Equal(t, 16, info.Width)
}
