package vecbench

import "github.com/hupe1980/vecbench/index"

// Recall returns the fraction of truth keys present in approx.
//
// Both empty yields 1. An empty truth with a non-empty approx also yields 1,
// there is nothing to miss.
func Recall(truth, approx []index.SearchResult) float64 {
	if len(truth) == 0 {
		return 1
	}

	found := make(map[string]struct{}, len(approx))
	for _, r := range approx {
		found[r.Key] = struct{}{}
	}

	hits := 0
	for _, r := range truth {
		if _, ok := found[r.Key]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(truth))
}
