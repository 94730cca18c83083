package hnsw

import (
	"context"
	"math/rand"
	"sort"

	"github.com/arvok-systems/framevault/core"
	"github.com/arvok-systems/framevault/index"
	"github.com/arvok-systems/framevault/metric"
	"github.com/arvok-systems/framevault/queue"
)

// maxLayerCap bounds the layer an inserted node may be assigned to,
// matching canonical HNSW practice and keeping per-node memory bounded.
const maxLayerCap = 16

// Index is a hierarchical navigable small-world approximate-nearest-
// neighbor graph. It satisfies index.Index.
type Index struct {
	kernel    metric.Kernel
	dimension int

	m              int
	m0             int
	efConstruction int
	efSearch       int
	mL             float64
	seed           int64
	rng            *rand.Rand

	nodes    []*node
	ids      map[uint64]core.LocalID
	entry    core.LocalID
	hasEntry bool
	maxLayer int
}

var _ index.Index = (*Index)(nil)

// New creates an empty Index using kernel for similarity/distance. The
// dimension is fixed to kernel.Dimension() for the lifetime of the index.
func New(kernel metric.Kernel, optFns ...Option) *Index {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.M < 1 {
		opts.M = 1
	}

	efSearch := opts.EfSearch
	if efSearch <= 0 {
		efSearch = opts.EfConstruction
	}

	return &Index{
		kernel:         kernel,
		dimension:      kernel.Dimension(),
		m:              opts.M,
		m0:             2 * opts.M,
		efConstruction: opts.EfConstruction,
		efSearch:       efSearch,
		mL:             opts.ML,
		seed:           opts.Seed,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		ids:            make(map[uint64]core.LocalID),
	}
}

func (idx *Index) neighborBudget(layer int) int {
	if layer == 0 {
		return idx.m0
	}
	return idx.m
}

func (idx *Index) assignLayer() int {
	l := 0
	for {
		u := idx.rng.Float64()
		if u < idx.mL && l < maxLayerCap {
			l++
			continue
		}
		break
	}
	return l
}

// Add inserts or overwrites the vector for id. See index.Index for the
// idempotent-by-last-write contract on re-adding an existing id.
func (idx *Index) Add(id uint64, v []float32) error {
	if len(v) != idx.dimension {
		return &index.ErrDimensionMismatch{Expected: idx.dimension, Actual: len(v)}
	}

	vec := make([]float32, len(v))
	copy(vec, v)

	if local, ok := idx.ids[id]; ok {
		idx.nodes[local].vector = vec
		return nil
	}

	if !idx.hasEntry {
		n := &node{id: id, vector: vec, maxLayer: 0, neighbors: make([][]core.LocalID, 1)}
		local := idx.appendNode(n)
		idx.ids[id] = local
		idx.entry = local
		idx.hasEntry = true
		idx.maxLayer = 0
		return nil
	}

	oldMaxLayer := idx.maxLayer
	layer := idx.assignLayer()
	n := &node{id: id, vector: vec, maxLayer: layer, neighbors: make([][]core.LocalID, layer+1)}

	curr := idx.entry
	for l := oldMaxLayer; l > layer; l-- {
		working, err := idx.searchLayer(vec, []core.LocalID{curr}, 1, l)
		if err != nil {
			return err
		}
		if working.Len() > 0 {
			curr = core.LocalID(working.Top().(*queue.PriorityQueueItem).Node)
		}
	}

	entryPoints := []core.LocalID{curr}
	for l := min(layer, oldMaxLayer); l >= 0; l-- {
		working, err := idx.searchLayer(vec, entryPoints, idx.efConstruction, l)
		if err != nil {
			return err
		}

		n.neighbors[l] = idx.closestTo(vec, allNodes(working), idx.neighborBudget(l))
		entryPoints = allNodes(working)
	}

	local := idx.appendNode(n)
	idx.ids[id] = local

	for l := min(layer, oldMaxLayer); l >= 0; l-- {
		for _, nb := range n.neighbors[l] {
			idx.link(nb, local, l)
		}
	}

	if layer > oldMaxLayer {
		idx.entry = local
		idx.maxLayer = layer
	}

	return nil
}

// link adds newNode to neighbor's adjacency set at layer, pruning back to
// the layer's neighbor budget if the set overflows.
func (idx *Index) link(neighbor, newNode core.LocalID, layer int) {
	nb := idx.nodes[neighbor]
	if layer >= len(nb.neighbors) {
		return
	}

	nb.neighbors[layer] = append(nb.neighbors[layer], newNode)

	budget := idx.neighborBudget(layer)
	if len(nb.neighbors[layer]) <= budget {
		return
	}

	nb.neighbors[layer] = idx.closestTo(nb.vector, nb.neighbors[layer], budget)
}

// closestTo returns the budget candidates closest to ref, ascending by
// distance with ties broken by lower external ID.
func (idx *Index) closestTo(ref []float32, candidates []core.LocalID, budget int) []core.LocalID {
	type scored struct {
		local core.LocalID
		dist  float32
		id    uint64
	}

	scoredCandidates := make([]scored, len(candidates))
	for i, c := range candidates {
		d, _ := idx.kernel.Distance(ref, idx.nodes[c].vector)
		scoredCandidates[i] = scored{local: c, dist: d, id: idx.nodes[c].id}
	}

	sort.Slice(scoredCandidates, func(i, j int) bool {
		if scoredCandidates[i].dist != scoredCandidates[j].dist {
			return scoredCandidates[i].dist < scoredCandidates[j].dist
		}
		return scoredCandidates[i].id < scoredCandidates[j].id
	})

	if len(scoredCandidates) > budget {
		scoredCandidates = scoredCandidates[:budget]
	}

	out := make([]core.LocalID, len(scoredCandidates))
	for i, s := range scoredCandidates {
		out[i] = s.local
	}
	return out
}

func (idx *Index) appendNode(n *node) core.LocalID {
	local := core.LocalID(len(idx.nodes))
	idx.nodes = append(idx.nodes, n)
	return local
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

// Search returns up to k results ordered by descending similarity.
func (idx *Index) Search(ctx context.Context, q []float32, k int) ([]index.SearchResult, error) {
	if len(q) != idx.dimension {
		return nil, &index.ErrDimensionMismatch{Expected: idx.dimension, Actual: len(q)}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !idx.hasEntry || k <= 0 {
		return []index.SearchResult{}, nil
	}

	curr := idx.entry
	for l := idx.maxLayer; l > 0; l-- {
		working, err := idx.searchLayer(q, []core.LocalID{curr}, 1, l)
		if err != nil {
			return nil, err
		}
		if working.Len() > 0 {
			curr = core.LocalID(working.Top().(*queue.PriorityQueueItem).Node)
		}
	}

	working, err := idx.searchLayer(q, []core.LocalID{curr}, idx.efSearch, 0)
	if err != nil {
		return nil, err
	}

	return idx.toResults(working, q, k)
}

func (idx *Index) toResults(working *queue.PriorityQueue, q []float32, k int) ([]index.SearchResult, error) {
	items := working.Items
	type scored struct {
		local core.LocalID
		dist  float32
		id    uint64
	}
	scoredItems := make([]scored, len(items))
	for i, it := range items {
		scoredItems[i] = scored{local: core.LocalID(it.Node), dist: it.Distance, id: idx.nodes[it.Node].id}
	}
	sort.Slice(scoredItems, func(i, j int) bool {
		if scoredItems[i].dist != scoredItems[j].dist {
			return scoredItems[i].dist < scoredItems[j].dist
		}
		return scoredItems[i].id < scoredItems[j].id
	})
	if len(scoredItems) > k {
		scoredItems = scoredItems[:k]
	}

	results := make([]index.SearchResult, len(scoredItems))
	for i, s := range scoredItems {
		sim, err := idx.kernel.Similarity(q, idx.nodes[s.local].vector)
		if err != nil {
			return nil, err
		}
		results[i] = index.SearchResult{ID: s.id, Similarity: sim, Distance: s.dist}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].ID < results[j].ID
	})

	return results, nil
}

// GetVector returns a defensive copy of the vector stored for id.
func (idx *Index) GetVector(id uint64) ([]float32, bool) {
	local, ok := idx.ids[id]
	if !ok {
		return nil, false
	}
	v := make([]float32, len(idx.nodes[local].vector))
	copy(v, idx.nodes[local].vector)
	return v, true
}

// Size returns the number of distinct IDs currently stored.
func (idx *Index) Size() int {
	return len(idx.ids)
}

// Clear discards all vectors and graph structure.
func (idx *Index) Clear() {
	idx.nodes = nil
	idx.ids = make(map[uint64]core.LocalID)
	idx.hasEntry = false
	idx.maxLayer = 0
	idx.entry = 0
}

func allNodes(pq *queue.PriorityQueue) []core.LocalID {
	out := make([]core.LocalID, len(pq.Items))
	for i, it := range pq.Items {
		out[i] = core.LocalID(it.Node)
	}
	return out
}
