package hnsw

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvok-systems/framevault/metric"
	"github.com/arvok-systems/framevault/testutil"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(99)
	vectors := rng.UniformVectors(100, 16)

	idx := New(metric.NewL2(16), WithM(12), WithEfConstruction(64), WithSeed(3))
	for i, v := range vectors {
		require.NoError(t, idx.Add(uint64(i), v))
	}

	path := filepath.Join(t.TempDir(), "hnsw.v2")
	require.NoError(t, idx.Save(path))

	fresh := New(metric.NewL2(16), WithM(12), WithEfConstruction(64), WithSeed(3))
	require.NoError(t, fresh.Load(path))

	assert.Equal(t, idx.Size(), fresh.Size())
	assert.Equal(t, idx.hasEntry, fresh.hasEntry)
	if idx.hasEntry {
		assert.Equal(t, idx.nodes[idx.entry].id, fresh.nodes[fresh.entry].id)
	}

	q := vectors[42]
	want, err := idx.Search(context.Background(), q, 5)
	require.NoError(t, err)
	got, err := fresh.Search(context.Background(), q, 5)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hnsw.v2")
	require.NoError(t, os.WriteFile(path, []byte("not-hnsw\n"), 0o644))

	idx := New(metric.NewL2(4))
	require.NoError(t, idx.Add(0, []float32{1, 2, 3, 4}))

	err := idx.Load(path)
	require.Error(t, err)
	// A failed load must leave the index as it was.
	assert.Equal(t, 1, idx.Size())
}

func TestLoadRejectsDimensionMismatch(t *testing.T) {
	idx := New(metric.NewL2(4))
	require.NoError(t, idx.Add(0, []float32{1, 2, 3, 4}))
	path := filepath.Join(t.TempDir(), "hnsw.v2")
	require.NoError(t, idx.Save(path))

	fresh := New(metric.NewL2(5))
	err := fresh.Load(path)
	require.Error(t, err)
}

func TestLoadDropsUnknownNeighborReferences(t *testing.T) {
	idx := New(metric.NewL2(2))
	require.NoError(t, idx.Add(0, []float32{0, 0}))
	require.NoError(t, idx.Add(1, []float32{1, 1}))

	path := filepath.Join(t.TempDir(), "hnsw.v2")
	require.NoError(t, idx.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Inject a neighbor reference to an ID that doesn't exist in this file.
	// The CRC32 trailer is removed first; Load discards everything after
	// that trailer, so a line appended behind it would never be parsed.
	body := string(data)
	if i := strings.LastIndex(body, "#CRC32:"); i >= 0 {
		body = body[:i]
	}
	patched := body + "0|0:999\n"
	require.NoError(t, os.WriteFile(path, []byte(patched), 0o644))

	fresh := New(metric.NewL2(2))
	require.NoError(t, fresh.Load(path))
	assert.Equal(t, 2, fresh.Size())
}

func TestLoadRejectsChecksumMismatch(t *testing.T) {
	idx := New(metric.NewL2(2))
	require.NoError(t, idx.Add(0, []float32{0, 0}))

	path := filepath.Join(t.TempDir(), "hnsw.v2")
	require.NoError(t, idx.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Flip a byte inside the body (not the trailer) so the recorded
	// checksum no longer matches the recomputed one.
	corrupted := append([]byte{}, data...)
	corrupted[0] = 'X'
	require.NoError(t, os.WriteFile(path, corrupted, 0o644))

	fresh := New(metric.NewL2(2))
	err = fresh.Load(path)
	require.Error(t, err)
}
