// Package index defines the shared Index contract. See the hnsw package
// for the approximate, graph-based implementation and the flat package
// for the exhaustive exact-search baseline.
package index
