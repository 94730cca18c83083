package hnsw

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvok-systems/framevault/flat"
	"github.com/arvok-systems/framevault/metric"
	"github.com/arvok-systems/framevault/testutil"
)

// TestRecallAgainstFlatIndex builds both an HNSW and a flat index over
// the same uniform-random vectors and checks that HNSW's approximate
// top-5 shares at least 4 of 5 IDs with flat's exact top-5 for at least
// 95% of random queries.
func TestRecallAgainstFlatIndex(t *testing.T) {
	const (
		n  = 500
		d  = 32
		k  = 5
		qs = 50
	)

	rng := testutil.NewRNG(7)
	vectors := rng.UniformVectors(n, d)

	kernel := metric.NewL2(d)
	h := New(kernel, WithM(16), WithEfConstruction(200))
	f := flat.New(kernel)

	for i, v := range vectors {
		require.NoError(t, h.Add(uint64(i), v))
		require.NoError(t, f.Add(uint64(i), v))
	}

	queries := rng.UniformVectors(qs, d)

	passed := 0
	for _, q := range queries {
		approx, err := h.Search(context.Background(), q, k)
		require.NoError(t, err)
		exact, err := f.Search(context.Background(), q, k)
		require.NoError(t, err)

		exactSet := make(map[uint64]struct{}, len(exact))
		for _, r := range exact {
			exactSet[r.ID] = struct{}{}
		}

		shared := 0
		for _, r := range approx {
			if _, ok := exactSet[r.ID]; ok {
				shared++
			}
		}

		if shared >= 4 {
			passed++
		}
	}

	rate := float64(passed) / float64(qs)
	assert.GreaterOrEqual(t, rate, 0.95, "recall floor not met: %d/%d queries scored >=4/5", passed, qs)
}
