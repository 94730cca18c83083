// Package core provides small value types shared by the index implementations.
package core

// LocalID is a dense, internal slot identifier for a node within a single
// index's arena. It is distinct from the caller-chosen external ID — node
// IDs are not required to be dense or monotonic — and is never exposed
// across the public API. Adjacency lists and bitsets are indexed by LocalID
// for cache locality.
type LocalID uint32

// MaxLocalID is the maximum possible value for a LocalID.
const MaxLocalID = ^LocalID(0)
