package hnsw

import (
	"container/heap"

	"github.com/bits-and-blooms/bitset"

	"github.com/arvok-systems/framevault/core"
	"github.com/arvok-systems/framevault/queue"
)

// searchLayer is the beam-style best-first traversal constrained to edges
// at the given layer, as specified for HNSW's search-layer primitive. It
// returns the working set, a max-heap (farthest at the top) of at most ef
// candidates nearest to q.
func (idx *Index) searchLayer(q []float32, entryPoints []core.LocalID, ef int, layer int) (*queue.PriorityQueue, error) {
	visited := bitset.New(uint(len(idx.nodes)))

	candidates := &queue.PriorityQueue{Order: false}
	working := &queue.PriorityQueue{Order: true}
	heap.Init(candidates)
	heap.Init(working)

	for _, ep := range entryPoints {
		if visited.Test(uint(ep)) {
			continue
		}
		visited.Set(uint(ep))

		d, err := idx.kernel.Distance(q, idx.nodes[ep].vector)
		if err != nil {
			return nil, err
		}

		item := &queue.PriorityQueueItem{Node: uint32(ep), Distance: d}
		heap.Push(candidates, item)
		heap.Push(working, item)
	}

	for candidates.Len() > 0 {
		c := heap.Pop(candidates).(*queue.PriorityQueueItem)
		farthest := working.Top().(*queue.PriorityQueueItem)

		if c.Distance > farthest.Distance && working.Len() >= ef {
			break
		}

		n := idx.nodes[c.Node]
		if layer >= len(n.neighbors) {
			continue
		}

		for _, nbLocal := range n.neighbors[layer] {
			if visited.Test(uint(nbLocal)) {
				continue
			}
			visited.Set(uint(nbLocal))

			d, err := idx.kernel.Distance(q, idx.nodes[nbLocal].vector)
			if err != nil {
				return nil, err
			}

			farthest = working.Top().(*queue.PriorityQueueItem)
			if working.Len() < ef || d < farthest.Distance {
				item := &queue.PriorityQueueItem{Node: uint32(nbLocal), Distance: d}
				heap.Push(candidates, item)
				heap.Push(working, item)
				if working.Len() > ef {
					heap.Pop(working)
				}
			}
		}
	}

	return working, nil
}
