package hnsw

import "github.com/arvok-systems/framevault/core"

// node is one arena slot: a caller-chosen external ID, its owned vector
// copy, and a neighbor set per layer from 0 to maxLayer.
type node struct {
	id        uint64
	vector    []float32
	maxLayer  int
	neighbors [][]core.LocalID
}
