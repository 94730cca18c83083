package framevault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arvok-systems/framevault/decode"
	"github.com/arvok-systems/framevault/encode"
	"github.com/arvok-systems/framevault/index"
)

// Embedder maps a chunk of text to its embedding vector. Callers plug in
// whatever model they use (local ONNX model, an HTTP call to a hosted
// embedding API, etc.); framevault treats it as an opaque collaborator.
type Embedder func(text string) ([]float32, error)

// Store is a thin, optional facade bundling a pluggable Embedder, a vector
// index, and the encode/decode coordinators, implementing the ingest ->
// build -> query control flow end to end. Its own behavior is not governed
// by any invariant beyond what its components already guarantee; it exists
// to save callers from wiring the same four collaborators by hand.
//
// Store is not internally synchronized beyond what is documented on
// Ingest; a caller driving concurrent Ingest/Build/Query against one Store
// must provide its own mutual exclusion around Build, matching the
// not-synchronized contract of encode.Coordinator and index.Index.
type Store struct {
	embed   Embedder
	idx     index.Index
	encoder *encode.Coordinator
	decoder *decode.Coordinator

	logger  *Logger
	metrics MetricsCollector

	mirror       blobStoreMirror
	mirrorPrefix string
}

// blobStoreMirror is the subset of blobstore.BlobStore Store needs, kept
// narrow so this file doesn't have to import blobstore just to hold an
// interface value through to WithMirror.
type blobStoreMirror interface {
	Put(ctx context.Context, name string, data []byte) error
}

// New creates a Store. dec may be nil if the caller never needs Retrieve
// through this facade (e.g. a write-only ingestion service).
func New(idx index.Index, embed Embedder, enc *encode.Coordinator, dec *decode.Coordinator, optFns ...Option) (*Store, error) {
	if idx == nil {
		return nil, &ErrInvalidArgument{Reason: "index must not be nil"}
	}
	if embed == nil {
		return nil, &ErrInvalidArgument{Reason: "embedder must not be nil"}
	}
	if enc == nil {
		return nil, &ErrInvalidArgument{Reason: "encode coordinator must not be nil"}
	}

	opts := applyOptions(optFns)
	return &Store{
		embed:        embed,
		idx:          idx,
		encoder:      enc,
		decoder:      dec,
		logger:       opts.logger,
		metrics:      opts.metricsCollector,
		mirror:       opts.mirror,
		mirrorPrefix: opts.mirrorPrefix,
	}, nil
}

// Ingest chunks text and, for every resulting chunk, embeds it and inserts
// the embedding into the vector index under an ID equal to the chunk's
// eventual frame number (its position in the encode coordinator's
// buffer). Chunking and buffering happen synchronously up front, so the
// buffer a concurrent Build would see is never partially updated; only the
// embed+index-insert step is fanned out, via golang.org/x/sync/errgroup,
// one goroutine per chunk. Because index.Index is not internally
// synchronized, inserts themselves are serialized under a mutex while
// embedding calls — typically the slow, network-bound step — run
// concurrently.
func (s *Store) Ingest(ctx context.Context, text string) error {
	start := time.Now()

	offset := s.encoder.BufferLen()
	chunks := s.encoder.AddMessage(text)

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			vec, err := s.embed(chunk.Content)
			if err != nil {
				return fmt.Errorf("ingest: embed chunk %d: %w", i, err)
			}

			id := uint64(offset + i)
			mu.Lock()
			err = s.idx.Add(id, vec)
			mu.Unlock()

			s.logger.LogInsert(gctx, id, len(vec), err)
			return err
		})
	}
	err := g.Wait()

	s.metrics.RecordIngest(len(chunks), time.Since(start), err)
	if err != nil {
		return translateError(err)
	}
	return nil
}

// Build delegates to the encode coordinator, logging and recording
// metrics around the call. If a mirror was configured via WithMirror, a
// successful local build is additionally copied to the remote store under
// mirrorPrefix + filepath.Base(path); a mirroring failure is logged but
// does not fail Build, since the local container is already the durable
// result (spec.md §4.7).
func (s *Store) Build(ctx context.Context, path string, params encode.BuildParams) (*encode.Stats, error) {
	start := time.Now()
	stats, err := s.encoder.BuildVideo(ctx, path, params)

	frames := 0
	if stats != nil {
		frames = stats.Encoder.TotalFrames
	}
	s.logger.LogBuildVideo(ctx, path, frames, err)
	s.metrics.RecordBuildVideo(frames, time.Since(start), err)

	if err != nil {
		return nil, translateError(err)
	}

	if s.mirror != nil {
		s.mirrorContainer(ctx, path)
	}
	return stats, nil
}

func (s *Store) mirrorContainer(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.ErrorContext(ctx, "mirror read failed", "path", path, "error", err)
		return
	}
	name := s.mirrorPrefix + filepath.Base(path)
	if err := s.mirror.Put(ctx, name, data); err != nil {
		s.logger.ErrorContext(ctx, "mirror upload failed", "path", path, "name", name, "error", err)
	}
}

// Query embeds text and searches the vector index for its k nearest
// chunks. Results carry chunk IDs (frame numbers), not text; combine with
// Retrieve, or a decode.Coordinator directly, to recover the underlying
// text for a result.
func (s *Store) Query(ctx context.Context, text string, k int) ([]index.SearchResult, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	start := time.Now()
	vec, err := s.embed(text)
	if err != nil {
		return nil, fmt.Errorf("query: embed: %w", err)
	}

	results, err := s.idx.Search(ctx, vec, k)
	s.logger.LogSearch(ctx, k, len(results), err)
	s.metrics.RecordQuery(k, time.Since(start), err)
	if err != nil {
		return nil, translateError(err)
	}
	return results, nil
}

// Retrieve decodes every chunk of the container at path back into text,
// via the decode.Coordinator supplied to New. It returns ErrInvalidState
// if this Store was constructed without one.
func (s *Store) Retrieve(ctx context.Context, path string) ([]string, error) {
	if s.decoder == nil {
		return nil, &ErrInvalidState{Reason: "store was constructed without a decode.Coordinator"}
	}

	start := time.Now()
	texts, err := s.decoder.Retrieve(ctx, path)
	s.logger.LogRetrieve(ctx, path, len(texts), err)
	s.metrics.RecordRetrieve(len(texts), time.Since(start), err)
	if err != nil {
		return nil, translateError(err)
	}
	return texts, nil
}
