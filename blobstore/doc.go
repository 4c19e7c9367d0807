// Package blobstore provides read access to dataset files regardless of where
// they live.
//
// BlobStore opens named, immutable blobs. Implementations must be safe for
// concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, memory-mapped
//   - MemoryStore: in-process map, used by tests
//   - s3.Store: Amazon S3 with ranged reads
//   - minio.Store: MinIO or any S3-compatible endpoint
//
// The file system and object stores also list their blob names, which is
// what the command line uses to browse datasets.
//
// Blobs are random-access. Use NewReader to consume one sequentially, which is
// how the dataset codecs read them.
package blobstore
