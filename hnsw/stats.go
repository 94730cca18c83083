package hnsw

// Stats summarizes graph shape for diagnostics and logging.
type Stats struct {
	M              int
	M0             int
	EfConstruction int
	EfSearch       int
	MaxLayer       int
	NodeCount      int
	NodesPerLayer  []int
}

// Stats computes a snapshot of the graph's current shape.
func (idx *Index) Stats() Stats {
	nodesPerLayer := make([]int, idx.maxLayer+1)
	for _, n := range idx.nodes {
		for l := 0; l <= n.maxLayer && l < len(nodesPerLayer); l++ {
			nodesPerLayer[l]++
		}
	}

	return Stats{
		M:              idx.m,
		M0:             idx.m0,
		EfConstruction: idx.efConstruction,
		EfSearch:       idx.efSearch,
		MaxLayer:       idx.maxLayer,
		NodeCount:      len(idx.nodes),
		NodesPerLayer:  nodesPerLayer,
	}
}
