package flat

import (
	"context"
	"sort"

	"github.com/arvok-systems/framevault/index"
	"github.com/arvok-systems/framevault/metric"
)

// Index is an exhaustive-scan vector index. It satisfies index.Index
// with the same public surface as hnsw.Index; Search computes similarity
// against every stored vector.
type Index struct {
	kernel    metric.Kernel
	dimension int
	vectors   map[uint64][]float32
}

var _ index.Index = (*Index)(nil)

// New creates an empty Index using kernel for similarity/distance.
func New(kernel metric.Kernel) *Index {
	return &Index{
		kernel:    kernel,
		dimension: kernel.Dimension(),
		vectors:   make(map[uint64][]float32),
	}
}

// Add inserts or overwrites the vector for id. Unlike hnsw.Index, there
// is no graph structure to preserve on overwrite.
func (idx *Index) Add(id uint64, v []float32) error {
	if len(v) != idx.dimension {
		return &index.ErrDimensionMismatch{Expected: idx.dimension, Actual: len(v)}
	}
	vec := make([]float32, len(v))
	copy(vec, v)
	idx.vectors[id] = vec
	return nil
}

// AddBatch inserts entries in ascending-ID order.
func (idx *Index) AddBatch(ctx context.Context, entries map[uint64][]float32) error {
	ids := make([]uint64, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := idx.Add(id, entries[id]); err != nil {
			return err
		}
	}
	return nil
}

// Search computes similarity against every stored vector and returns the
// top-k by descending similarity, ties broken by lower ID.
func (idx *Index) Search(ctx context.Context, q []float32, k int) ([]index.SearchResult, error) {
	if len(q) != idx.dimension {
		return nil, &index.ErrDimensionMismatch{Expected: idx.dimension, Actual: len(q)}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 || len(idx.vectors) == 0 {
		return []index.SearchResult{}, nil
	}

	results := make([]index.SearchResult, 0, len(idx.vectors))
	for id, v := range idx.vectors {
		sim, err := idx.kernel.Similarity(q, v)
		if err != nil {
			return nil, err
		}
		dist, err := idx.kernel.Distance(q, v)
		if err != nil {
			return nil, err
		}
		results = append(results, index.SearchResult{ID: id, Similarity: sim, Distance: dist})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// GetVector returns a defensive copy of the vector stored for id.
func (idx *Index) GetVector(id uint64) ([]float32, bool) {
	v, ok := idx.vectors[id]
	if !ok {
		return nil, false
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out, true
}

// Size returns the number of distinct IDs currently stored.
func (idx *Index) Size() int {
	return len(idx.vectors)
}

// Clear discards all stored vectors.
func (idx *Index) Clear() {
	idx.vectors = make(map[uint64][]float32)
}
