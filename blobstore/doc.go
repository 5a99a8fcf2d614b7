// Package blobstore provides the storage abstraction datasets and query
// images are read from.
//
// BlobStore is the interface for opening read-only data blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap support
//   - MemoryStore: In-memory blobs (tests, embedded fixtures)
//   - ThrottledStore: Wraps another store and limits read throughput
//   - s3.Store: Amazon S3 (and S3-compatible endpoints)
//   - minio.Store: MinIO
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	}
//
// Use NewReader to consume a Blob as a sequential io.Reader.
package blobstore
