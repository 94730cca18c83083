// Package flat implements an exhaustive-scan vector index: the exact
// top-k oracle that hnsw's approximate recall is measured against, and
// the recommended default for small collections where a graph's
// construction cost isn't worth paying.
package flat
