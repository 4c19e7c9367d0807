package index

import (
	"github.com/hupe1980/vecbench/dataset"
	"github.com/hupe1980/vecbench/distance"
	"github.com/hupe1980/vecbench/internal/hnsw"
)

// SearchResult is a key with its distance to the query. Results are
// ordered closest first.
type SearchResult struct {
	Key      string
	Distance float32
}

// Index is the capability set every benchmarked index provides.
type Index interface {
	// Insert adds key or replaces its vector.
	Insert(key string, vector []float32) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Search returns at most k results, closest first. k <= 0 yields none.
	Search(target []float32, k int) ([]SearchResult, error)
	// Check validates the index structure without modifying it.
	Check() bool
	// Size returns the number of distinct live keys.
	Size() int
	// PrepareDataset applies the preprocessing the metric requires, in place.
	PrepareDataset(ds dataset.Dataset)
	// Metric returns the distance metric of the variant.
	Metric() distance.Metric
}

// Stats describes the shape of a graph-backed index.
type (
	Stats      = hnsw.Stats
	LevelStats = hnsw.LevelStats
)

// StatsProvider is implemented by indexes that can report their shape.
type StatsProvider interface {
	Stats() Stats
}

// graphIndex adapts *hnsw.Graph to Index. Variants embed it and supply
// PrepareDataset.
type graphIndex struct {
	graph  *hnsw.Graph
	metric distance.Metric
}

func (i *graphIndex) Insert(key string, vector []float32) error {
	return i.graph.Insert(key, vector)
}

func (i *graphIndex) Remove(key string) error {
	i.graph.Remove(key)
	return nil
}

func (i *graphIndex) Search(target []float32, k int) ([]SearchResult, error) {
	found, err := i.graph.Search(target, k)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, len(found))
	for j, r := range found {
		results[j] = SearchResult{Key: r.Key, Distance: r.Distance}
	}
	return results, nil
}

func (i *graphIndex) Check() bool {
	return i.graph.Check()
}

func (i *graphIndex) Size() int {
	return i.graph.Size()
}

func (i *graphIndex) Metric() distance.Metric {
	return i.metric
}

func (i *graphIndex) Stats() Stats {
	return i.graph.Stats()
}

// cosineIndex ranks by cosine distance over unit-normalized vectors.
type cosineIndex struct {
	graphIndex
}

// PrepareDataset normalizes every vector in place.
func (i *cosineIndex) PrepareDataset(ds dataset.Dataset) {
	dataset.Normalize(ds)
}

// dotProductIndex ranks by raw dot product distance.
type dotProductIndex struct {
	graphIndex
}

// PrepareDataset is a no-op; raw vectors take part in the distance directly.
func (i *dotProductIndex) PrepareDataset(dataset.Dataset) {}

var (
	_ Index = (*cosineIndex)(nil)
	_ Index = (*dotProductIndex)(nil)

	_ StatsProvider = (*cosineIndex)(nil)
	_ StatsProvider = (*dotProductIndex)(nil)
)
