package dataset

import (
	"fmt"
	"math/rand"

	"github.com/hupe1980/vecbench/distance"
)

// Entry is a keyed vector. Keys are unique by caller contract.
type Entry struct {
	Key    string
	Vector []float32
}

// Dataset is an ordered sequence of entries.
type Dataset []Entry

// Dim returns the dimensionality of the first vector, or 0 for an empty dataset.
func (ds Dataset) Dim() int {
	if len(ds) == 0 {
		return 0
	}
	return len(ds[0].Vector)
}

// Validate reports the first entry whose dimension differs from the first
// entry's, or whose vector is empty.
func (ds Dataset) Validate() error {
	dim := ds.Dim()
	for i, e := range ds {
		if len(e.Vector) == 0 {
			return fmt.Errorf("dataset: entry %d (%q) has an empty vector", i, e.Key)
		}
		if len(e.Vector) != dim {
			return fmt.Errorf("dataset: entry %d (%q) has dimension %d, want %d", i, e.Key, len(e.Vector), dim)
		}
	}
	return nil
}

// Clone returns a deep copy of ds.
func (ds Dataset) Clone() Dataset {
	out := make(Dataset, len(ds))
	for i, e := range ds {
		v := make([]float32, len(e.Vector))
		copy(v, e.Vector)
		out[i] = Entry{Key: e.Key, Vector: v}
	}
	return out
}

// Shuffle permutes ds in place. The same generator state yields the same
// permutation.
func Shuffle(ds Dataset, rng *rand.Rand) {
	rng.Shuffle(len(ds), func(i, j int) {
		ds[i], ds[j] = ds[j], ds[i]
	})
}

// Normalize scales every vector in place to unit L2 norm.
//
// Zero vectors are not allowed; normalizing one yields NaN components.
func Normalize(ds Dataset) {
	for _, e := range ds {
		distance.ScaleInPlace(e.Vector, 1/distance.Norm(e.Vector))
	}
}

// ControlSize returns explicit when set. Otherwise it returns one percent of
// the dataset, at least 1 and at most len(ds).
func ControlSize(ds Dataset, explicit *int) int {
	if explicit != nil {
		return *explicit
	}
	return min(len(ds), max(1, len(ds)/100))
}

// Split partitions ds into a control prefix of controlSize entries and the
// remaining main suffix. controlSize is clamped to [0, len(ds)].
//
// Both results are freshly allocated, so later mutation of one does not
// affect the other or ds. The vectors themselves are shared.
func Split(ds Dataset, controlSize int) (main, control Dataset) {
	controlSize = min(max(controlSize, 0), len(ds))

	control = make(Dataset, controlSize)
	copy(control, ds[:controlSize])

	main = make(Dataset, len(ds)-controlSize)
	copy(main, ds[controlSize:])

	return main, control
}
