// Package hnsw implements a hierarchical navigable small-world
// approximate-nearest-neighbor graph: a multi-layer proximity graph
// supporting logarithmic-time approximate k-nearest-neighbor search,
// incremental construction, and persistence.
//
// The graph is stored as an arena: a dense slice of node records indexed
// by an internal core.LocalID, with a side map from the caller-chosen
// external ID to its LocalID. Adjacency lists hold LocalIDs so graph
// traversal never touches the external-ID map.
//
// Index is not internally synchronized; concurrent callers must provide
// their own mutual exclusion.
package hnsw
