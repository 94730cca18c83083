// Package blobstore provides an optional remote mirroring backend for
// container files and index snapshots.
//
// BlobStore abstracts reading and writing immutable blobs across local
// filesystem, S3, and MinIO/S3-compatible backends. Implementations must be
// safe for concurrent use.
//
// # Built-in implementations
//
//   - LocalStore: local filesystem
//   - s3.Store: Amazon S3, with range reads and streaming uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom implementations
//
// Implement BlobStore to support another backend:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// CachingStore wraps any BlobStore with a block-level cache, useful when
// the backend charges per request (e.g. S3 GET pricing) and reads are not
// uniformly random.
package blobstore
