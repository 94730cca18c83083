package testutil

import (
	"math"
	"math/rand"
	"sort"
	"sync"
)

// SearchResult mirrors index.SearchResult without importing the index
// package, so testutil stays dependency-free for the packages it is used
// from.
type SearchResult struct {
	ID       uint64
	Distance float32
}

// RNG wraps math/rand with a recorded seed and fixed-axis vector
// generators used across the recall and determinism tests. It is
// thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// FillUniform fills dst with random values in range [0, 1).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float32()
	}
}

// FillGaussian fills dst with values drawn from a standard normal
// distribution.
func (r *RNG) FillGaussian(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = float32(r.rand.NormFloat64())
	}
}

// UniformVectors generates num random vectors of the given dimension with
// values in range [0, 1), backed by a single contiguous allocation.
func (r *RNG) UniformVectors(num, dimension int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimension)
	vectors := make([][]float32, num)

	for i := range num {
		vec := data[i*dimension : (i+1)*dimension]
		for j := range vec {
			vec[j] = r.rand.Float32()
		}
		vectors[i] = vec
	}

	return vectors
}

// UnitVectors generates num random L2-normalized vectors (points on the
// unit hypersphere), useful for exercising Cosine and Dot kernels.
func (r *RNG) UnitVectors(num, dimension int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimension)
	vectors := make([][]float32, num)

	for i := range num {
		vec := data[i*dimension : (i+1)*dimension]
		var norm float64
		for j := range vec {
			v := r.rand.NormFloat64()
			vec[j] = float32(v)
			norm += v * v
		}
		if norm == 0 {
			norm = 1
		}
		inv := float32(1.0 / math.Sqrt(norm))
		for j := range vec {
			vec[j] *= inv
		}
		vectors[i] = vec
	}

	return vectors
}

// ComputeRecall computes recall@k: the fraction of groundTruth's IDs that
// also appear in approximate, where k = min(len(groundTruth), len(approximate)).
func ComputeRecall(groundTruth, approximate []SearchResult) float64 {
	if len(groundTruth) == 0 && len(approximate) == 0 {
		return 1.0
	}
	if len(groundTruth) == 0 || len(approximate) == 0 {
		return 0.0
	}

	k := min(len(approximate), len(groundTruth))

	truthSet := make(map[uint64]struct{}, k)
	for i := range k {
		truthSet[groundTruth[i].ID] = struct{}{}
	}

	hits := 0
	for i := 0; i < len(approximate) && i < k; i++ {
		if _, ok := truthSet[approximate[i].ID]; ok {
			hits++
		}
	}

	return float64(hits) / float64(k)
}

// BruteForceSearch performs an exhaustive top-k search over vectors using
// squared Euclidean distance, producing ground truth for recall tests.
func BruteForceSearch(vectors map[uint64][]float32, query []float32, k int) []SearchResult {
	results := make([]SearchResult, 0, len(vectors))
	for id, v := range vectors {
		var sum float32
		for i := range query {
			d := query[i] - v[i]
			sum += d * d
		}
		results = append(results, SearchResult{ID: id, Distance: sum})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}
