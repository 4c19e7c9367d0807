// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is an S3-compatible object store. This package uses the official
// MinIO Go client, so it also works against Ceph, SeaweedFS and Garage.
//
// # Basic Usage
//
//	store, err := minio.New("localhost:9000", "datasets",
//	    minio.WithCredentials("minioadmin", "minioadmin"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ds, err := dataset.Load(ctx, store, "glove-100.txt.lz4")
package minio
