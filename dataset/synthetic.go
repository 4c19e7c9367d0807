package dataset

import (
	"math/rand"
	"strconv"
)

// Synthetic builds n Gaussian vectors of dimension dim keyed "vec-<i>".
// When unit is set every vector is normalized.
func Synthetic(n, dim int, rng *rand.Rand, unit bool) Dataset {
	ds := make(Dataset, n)
	for i := range ds {
		v := make([]float32, dim)
		for j := range v {
			v[j] = float32(rng.NormFloat64())
		}
		ds[i] = Entry{Key: "vec-" + strconv.Itoa(i), Vector: v}
	}

	if unit {
		Normalize(ds)
	}

	return ds
}
