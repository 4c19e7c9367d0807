// Package testutil provides testing utilities for vecbench.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random vectors and datasets, computing
// exact nearest neighbors, and verifying search recall.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vec := make([]float32, 128)
//	rng.FillUniform(vec)      // uniform [0, 1)
//	ds := rng.UnitDataset(1000, 64)
//
// # Exact Search (Ground Truth)
//
//	results := testutil.BruteForceSearch(ds, query, k, distance.CosineDistance)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(exactResults, approxResults)
package testutil
