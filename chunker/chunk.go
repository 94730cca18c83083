package chunker

// Chunk is a bounded, ordered slice of source text. Chunks are immutable
// after creation; callers that need mutated metadata should build a new one.
type Chunk struct {
	Content        string
	StartOffset    int
	EndOffset      int
	SequenceNumber int
	ParentIndex    *int
	Metadata       map[string]string
}
