// Package cli implements the vecbench command line.
//
//	vecbench run --metric cosine --max-links 16 --remove-ratio 0.1 ./sift.fvecs.zst
//	vecbench run --config bench.toml s3://datasets/glove-100.txt.lz4
//	vecbench generate --count 100000 --dim 128 ./synthetic.fvecs.zst
//	vecbench version
//
// Datasets are addressed by URI: a local path, s3://bucket/key or
// minio://endpoint/bucket/key.
package cli
