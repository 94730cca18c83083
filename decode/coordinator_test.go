package decode

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvok-systems/framevault/cache"
	"github.com/arvok-systems/framevault/chunker"
	"github.com/arvok-systems/framevault/encode"
	"github.com/arvok-systems/framevault/qr"
	"github.com/arvok-systems/framevault/video"
	"github.com/arvok-systems/framevault/video/kvid"
)

func buildContainer(t *testing.T, messages []string) (string, []string) {
	t.Helper()
	c := chunker.New(chunker.WithChunkSize(200), chunker.WithOverlapSize(0), chunker.WithPreserveSentences(false))
	co := encode.New(c, qr.NewReferenceCodec(), func() video.Encoder { return kvid.New() })

	var expected []string
	for _, m := range messages {
		chunks := co.AddMessage(m)
		for _, ch := range chunks {
			expected = append(expected, ch.Content)
		}
	}

	path := filepath.Join(t.TempDir(), "out.kvid")
	_, err := co.BuildVideo(context.Background(), path, encode.BuildParams{
		Width: 64, Height: 64, FPS: 30, Version: 1, ECC: qr.EccLow,
	})
	require.NoError(t, err)
	return path, expected
}

func TestRetrieveRoundTripsAllChunks(t *testing.T) {
	path, expected := buildContainer(t, []string{"hello", "world", "third message", "fourth", "fifth one here"})

	dec := New(kvid.New(), qr.NewReferenceCodec())
	got, err := dec.Retrieve(context.Background(), path)
	require.NoError(t, err)

	assert.ElementsMatch(t, expected, got)
}

func TestRetrieveFramesSubset(t *testing.T) {
	path, expected := buildContainer(t, []string{"alpha", "beta", "gamma"})

	dec := New(kvid.New(), qr.NewReferenceCodec())
	got, err := dec.RetrieveFrames(context.Background(), path, []int{1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, expected[1], got[0])
}

func TestRetrieveSurfacesMissingFile(t *testing.T) {
	dec := New(kvid.New(), qr.NewReferenceCodec())
	_, err := dec.Retrieve(context.Background(), "/no/such/file.kvid")
	require.Error(t, err)
}

func TestRetrieveUsesCacheOnSecondCall(t *testing.T) {
	path, expected := buildContainer(t, []string{"cached message one", "cached message two"})

	blockCache := cache.NewLRUBlockCache(1<<20, nil)
	dec := New(kvid.New(), qr.NewReferenceCodec(), WithCache(blockCache))

	first, err := dec.Retrieve(context.Background(), path)
	require.NoError(t, err)
	assert.ElementsMatch(t, expected, first)

	assert.Greater(t, blockCache.Size(), int64(0))

	second, err := dec.Retrieve(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
