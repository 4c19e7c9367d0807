// Package distance provides the vector kernels used by the benchmark harness.
//
// # Supported Metrics
//
//   - MetricDotProduct: 1 - dot(a, b), raw vectors participate directly
//   - MetricCosine: 1 - cos(a, b)
//
// Both distances are 0 for identical unit vectors and grow as vectors diverge,
// so smaller is always closer.
//
// # Usage
//
//	d := distance.CosineDistance(a, b)
//	sim := distance.Dot(a, b)
//	distance.NormalizeL2InPlace(vec)
package distance
