// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store := s3.NewStore(client, "my-bucket", "containers/")
//
//	mirror := framevault.WithMirror(store, "containers/")
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Multipart uploads for large containers
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
