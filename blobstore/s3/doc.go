// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("datasets/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	ds, err := dataset.Load(ctx, store, "sift-10k.fvecs.zst")
//
// # Features
//
//   - Range reads for random access through blobstore.Blob
//   - Concurrent whole-object downloads via the transfer manager
//   - Configurable prefix for sharing a bucket between projects
package s3
