package distance

import (
	"fmt"
	"math"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	n := len(a)
	b = b[:n]

	var s0, s1, s2, s3 float32
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	for ; i < n; i++ {
		s0 += a[i] * b[i]
	}
	return s0 + s1 + s2 + s3
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	n := len(a)
	b = b[:n]

	var sum float32
	for i := range n {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float32 {
	return float32(math.Sqrt(float64(Dot(v, v))))
}

// ScaleInPlace multiplies every component of v by s.
func ScaleInPlace(v []float32, s float32) {
	for i := range v {
		v[i] *= s
	}
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm.
func NormalizeL2InPlace(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	norm2 := Dot(v, v)
	if norm2 == 0 {
		return false
	}
	ScaleInPlace(v, 1/float32(math.Sqrt(float64(norm2))))
	return true
}

// DotProductDistance returns 1 - dot(a, b).
// For unit vectors this equals the cosine distance.
func DotProductDistance(a, b []float32) float32 {
	return 1 - Dot(a, b)
}

// CosineDistance returns 1 - cos(a, b).
// A zero vector is treated as orthogonal to everything.
func CosineDistance(a, b []float32) float32 {
	ab := Dot(a, b)
	aa := Dot(a, a)
	bb := Dot(b, b)
	if aa == 0 || bb == 0 {
		return 1
	}
	return 1 - ab/float32(math.Sqrt(float64(aa)*float64(bb)))
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricDotProduct Metric = iota
	MetricCosine
)

func (m Metric) String() string {
	switch m {
	case MetricDotProduct:
		return "dot_product"
	case MetricCosine:
		return "cosine"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMetric maps a symbolic metric name to a Metric.
func ParseMetric(name string) (Metric, bool) {
	switch name {
	case "dot_product":
		return MetricDotProduct, true
	case "cosine":
		return MetricCosine, true
	default:
		return 0, false
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float32) float32

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricDotProduct:
		return DotProductDistance, nil
	case MetricCosine:
		return CosineDistance, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
