package flat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvok-systems/framevault/metric"
)

func TestAddAndGetVector(t *testing.T) {
	idx := New(metric.NewL2(3))
	require.NoError(t, idx.Add(1, []float32{1, 2, 3}))

	v, ok := idx.GetVector(1)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, v)
	assert.Equal(t, 1, idx.Size())
}

func TestAddDimensionMismatchIsAlwaysAnError(t *testing.T) {
	idx := New(metric.NewL2(3))
	err := idx.Add(1, []float32{1, 2})
	require.Error(t, err)
	assert.Equal(t, 0, idx.Size())
}

func TestSearchExactTopK(t *testing.T) {
	idx := New(metric.NewL2(2))
	require.NoError(t, idx.Add(0, []float32{0, 0}))
	require.NoError(t, idx.Add(1, []float32{1, 0}))
	require.NoError(t, idx.Add(2, []float32{5, 5}))
	require.NoError(t, idx.Add(3, []float32{10, 10}))

	results, err := idx.Search(context.Background(), []float32{0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, uint64(0), results[0].ID)
	assert.Equal(t, uint64(1), results[1].ID)
	assert.GreaterOrEqual(t, results[0].Similarity, results[1].Similarity)
}

func TestSearchEmptyAndNonPositiveK(t *testing.T) {
	idx := New(metric.NewL2(2))
	results, err := idx.Search(context.Background(), []float32{0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)

	require.NoError(t, idx.Add(0, []float32{0, 0}))
	results, err = idx.Search(context.Background(), []float32{0, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClear(t *testing.T) {
	idx := New(metric.NewL2(2))
	require.NoError(t, idx.Add(1, []float32{1, 1}))
	idx.Clear()
	assert.Equal(t, 0, idx.Size())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	idx := New(metric.NewCosine(3))
	for i := uint64(0); i < 20; i++ {
		require.NoError(t, idx.Add(i, []float32{float32(i), float32(i) * 2, 1}))
	}

	path := filepath.Join(t.TempDir(), "flat.v1")
	require.NoError(t, idx.Save(path))

	fresh := New(metric.NewCosine(3))
	require.NoError(t, fresh.Load(path))

	assert.Equal(t, idx.Size(), fresh.Size())

	q := []float32{3, 6, 1}
	want, err := idx.Search(context.Background(), q, 5)
	require.NoError(t, err)
	got, err := fresh.Search(context.Background(), q, 5)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRejectsDimensionMismatch(t *testing.T) {
	idx := New(metric.NewL2(3))
	require.NoError(t, idx.Add(0, []float32{1, 2, 3}))
	path := filepath.Join(t.TempDir(), "flat.v1")
	require.NoError(t, idx.Save(path))

	fresh := New(metric.NewL2(4))
	err := fresh.Load(path)
	require.Error(t, err)
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.v1")
	require.NoError(t, os.WriteFile(path, []byte("not a flat index\n"), 0o644))

	fresh := New(metric.NewL2(3))
	require.NoError(t, fresh.Add(0, []float32{1, 2, 3}))
	err := fresh.Load(path)
	require.Error(t, err)
	// A failed load must not mutate the index.
	assert.Equal(t, 1, fresh.Size())
}
