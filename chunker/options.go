package chunker

// Options configures a Chunker.
type Options struct {
	ChunkSize         int
	OverlapSize       int
	PreserveSentences bool
}

// DefaultOptions returns the Chunker defaults: 500-character chunks, a
// 50-character overlap, and sentence-boundary preservation enabled.
func DefaultOptions() Options {
	return Options{
		ChunkSize:         500,
		OverlapSize:       50,
		PreserveSentences: true,
	}
}

// Option mutates Options during construction.
type Option func(*Options)

// WithChunkSize sets the maximum number of characters per chunk.
func WithChunkSize(n int) Option {
	return func(o *Options) { o.ChunkSize = n }
}

// WithOverlapSize sets how many trailing characters of a chunk are retained
// as the head of the next chunk.
func WithOverlapSize(n int) Option {
	return func(o *Options) { o.OverlapSize = n }
}

// WithPreserveSentences toggles sentence-boundary-aware splitting.
func WithPreserveSentences(v bool) Option {
	return func(o *Options) { o.PreserveSentences = v }
}
