// Package framevault stores arbitrary text corpora inside a video
// container and provides semantic retrieval over that corpus.
//
// Text is split into bounded chunks; each chunk is rendered as a QR code
// and becomes one frame of a video (exploiting video-codec compression as
// a storage backend), while in parallel each chunk's embedding vector is
// inserted into an on-disk approximate-nearest-neighbor index, so that a
// natural-language query can be mapped back to chunk identifiers and,
// through those, to frame indices and decoded text.
//
// # Quick start
//
//	idx := hnsw.New(metric.NewCosine(dimension))
//	c := chunker.New(chunker.WithChunkSize(500), chunker.WithOverlapSize(50))
//	enc := encode.New(c, qr.NewReferenceCodec(), func() video.Encoder { return kvid.New() })
//	dec := decode.New(kvid.NewDecoder(), qr.NewReferenceCodec())
//
//	store, _ := framevault.New(idx, embed, enc, dec)
//	_ = store.Ingest(ctx, "some text corpus")
//	_, _ = store.Build(ctx, "corpus.kvid", encode.BuildParams{Width: 256, Height: 256, FPS: 30, ECC: qr.EccLow})
//	results, _ := store.Query(ctx, "a natural-language question", 5)
//
// The core of this module is the hnsw and flat vector indexes and the
// encode/decode coordinators; Store is a thin, optional facade bundling a
// chunker, a pluggable embedder, an index, and the two coordinators.
package framevault
