package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore abstracts read/write access to immutable object storage used
// to mirror built video containers and index snapshots (spec.md §6.2,
// remote-persistence note).
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create opens a blob for writing; the blob is not guaranteed visible
	// to Open/List until the returned WritableBlob is closed.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes a blob atomically in one call.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the names of all blobs whose name starts with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.Closer
	// ReadAt reads len(p) bytes starting at off, as io.ReaderAt, but
	// cancellable via ctx for backends that make a network call per read.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange returns a stream over [off, off+length).
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	// Size returns the size of the blob in bytes.
	Size() int64
}

// WritableBlob is a handle to a blob being written. The blob is not
// durable until Close returns nil.
type WritableBlob interface {
	io.Writer
	io.Closer
	// Sync flushes any buffered data to the backing store without closing.
	Sync() error
}
