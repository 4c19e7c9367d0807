package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 32},
		{"Zero", []float32{0, 0, 0}, []float32{0, 0, 0}, 0},
		{"Mixed", []float32{1, -1, 2}, []float32{1, 1, -2}, -4},
		{"Empty", []float32{}, []float32{}, 0},
		{"Single", []float32{2}, []float32{3}, 6},
		// Exercises the unrolled loop and the tail
		{"Large", make([]float32, 1027), make([]float32, 1027), 0},
	}

	for i := range tests[5].a {
		tests[5].a[i] = 1
		tests[5].b[i] = 1
	}
	tests[5].expected = 1027

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dot(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-5)
		})
	}
}

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 27},
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"Mixed", []float32{1, -1}, []float32{-1, 1}, 8},
		{"Empty", []float32{}, []float32{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SquaredL2(tt.a, tt.b), 1e-5)
		})
	}
}

func TestNormalizeL2InPlace(t *testing.T) {
	v := []float32{3, 4}
	require.True(t, NormalizeL2InPlace(v))
	assert.InDelta(t, float32(0.6), v[0], 1e-6)
	assert.InDelta(t, float32(0.8), v[1], 1e-6)
	assert.InDelta(t, float32(1.0), Norm(v), 1e-6)

	assert.False(t, NormalizeL2InPlace([]float32{0, 0}))
	assert.False(t, NormalizeL2InPlace([]float32{}))
}

func TestDistances(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}

	t.Run("DotProduct", func(t *testing.T) {
		assert.InDelta(t, float32(0), DotProductDistance(a, a), 1e-6)
		assert.InDelta(t, float32(1), DotProductDistance(a, b), 1e-6)
		// Raw vectors are not rescaled.
		assert.InDelta(t, float32(-3), DotProductDistance([]float32{2, 0}, []float32{2, 0}), 1e-6)
	})

	t.Run("Cosine", func(t *testing.T) {
		assert.InDelta(t, float32(0), CosineDistance([]float32{2, 0}, []float32{5, 0}), 1e-6)
		assert.InDelta(t, float32(1), CosineDistance(a, b), 1e-6)
		assert.InDelta(t, float32(2), CosineDistance(a, []float32{-1, 0}), 1e-6)
		assert.Equal(t, float32(1), CosineDistance(a, []float32{0, 0}))
	})

	t.Run("CosineMatchesNormalizedDot", func(t *testing.T) {
		x := []float32{1, 2, 3}
		y := []float32{-2, 0.5, 4}
		want := CosineDistance(x, y)
		require.True(t, NormalizeL2InPlace(x))
		require.True(t, NormalizeL2InPlace(y))
		assert.InDelta(t, want, DotProductDistance(x, y), 1e-5)
	})
}

func TestMetric(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "dot_product", MetricDotProduct.String())
		assert.Equal(t, "cosine", MetricCosine.String())
		assert.Equal(t, "unknown(99)", Metric(99).String())
	})

	t.Run("Parse", func(t *testing.T) {
		m, ok := ParseMetric("cosine")
		require.True(t, ok)
		assert.Equal(t, MetricCosine, m)

		m, ok = ParseMetric("dot_product")
		require.True(t, ok)
		assert.Equal(t, MetricDotProduct, m)

		_, ok = ParseMetric("l2")
		assert.False(t, ok)
	})

	t.Run("Provider", func(t *testing.T) {
		f, err := Provider(MetricDotProduct)
		require.NoError(t, err)
		assert.InDelta(t, float32(1-32), f([]float32{1, 2, 3}, []float32{4, 5, 6}), 1e-5)

		f, err = Provider(MetricCosine)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, float64(f([]float32{1, 1}, []float32{3, 3})), 1e-6)

		_, err = Provider(Metric(99))
		assert.Error(t, err)
	})
}

func TestNorm(t *testing.T) {
	assert.InDelta(t, math.Sqrt(14), float64(Norm([]float32{1, 2, 3})), 1e-5)
}
