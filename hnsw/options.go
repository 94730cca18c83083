package hnsw

import "math"

// Options configures a new Index. Use the With* functions with New rather
// than constructing Options directly.
type Options struct {
	// M is the number of neighbors a node keeps per layer above layer 0.
	// Layer 0 keeps 2*M. Reasonable range is 2-100; higher M improves
	// recall at the cost of memory and build time.
	M int

	// EfConstruction bounds the dynamic candidate list size during
	// insertion. Larger values build a higher-quality graph more slowly.
	EfConstruction int

	// EfSearch bounds the dynamic candidate list size during Search. Set
	// to 0 to default to EfConstruction.
	EfSearch int

	// ML is the layer-assignment multiplier: larger values make higher
	// layers more likely. Defaults to 1/ln(2), the canonical HNSW value.
	ML float64

	// Seed seeds the layer-assignment RNG. The same seed and the same
	// ordered sequence of Add calls always produce the same graph.
	Seed int64
}

// DefaultOptions returns the reference parameterization: M=16,
// EfConstruction=200, ML=1/ln(2), Seed=1.
func DefaultOptions() Options {
	return Options{
		M:              16,
		EfConstruction: 200,
		EfSearch:       0,
		ML:             1 / math.Log(2),
		Seed:           1,
	}
}

// Option configures Options when constructing an Index with New.
type Option func(*Options)

// WithM sets the per-layer neighbor budget M.
func WithM(m int) Option {
	return func(o *Options) { o.M = m }
}

// WithEfConstruction sets the construction-time candidate list bound.
func WithEfConstruction(ef int) Option {
	return func(o *Options) { o.EfConstruction = ef }
}

// WithEfSearch sets the search-time candidate list bound. If unset (or
// set to 0), Search uses EfConstruction.
func WithEfSearch(ef int) Option {
	return func(o *Options) { o.EfSearch = ef }
}

// WithML sets the layer-assignment multiplier.
func WithML(ml float64) Option {
	return func(o *Options) { o.ML = ml }
}

// WithSeed sets the layer-assignment RNG seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}
