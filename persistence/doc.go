// Package persistence provides shared on-disk format helpers: CRC32
// integrity checksums and a write-to-temp-then-rename helper used by the
// hnsw and flat index Save implementations.
package persistence
