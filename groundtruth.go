package vecbench

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecbench/dataset"
	"github.com/hupe1980/vecbench/distance"
	"github.com/hupe1980/vecbench/index"
	"github.com/hupe1980/vecbench/internal/resource"
)

// exactSearch returns the k entries of live closest to q under fn. Ties are
// broken by key so the result is deterministic.
func exactSearch(live dataset.Dataset, q []float32, k int, fn distance.Func) []index.SearchResult {
	if k <= 0 || len(live) == 0 {
		return nil
	}

	all := make([]index.SearchResult, len(live))
	for i, e := range live {
		all[i] = index.SearchResult{Key: e.Key, Distance: fn(q, e.Vector)}
	}

	slices.SortFunc(all, func(a, b index.SearchResult) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})

	return all[:min(k, len(all))]
}

// groundTruth computes the exact top-k of every query against live. Work is
// spread over the controller's worker slots.
func groundTruth(ctx context.Context, rc *resource.Controller, live, queries dataset.Dataset, k int, fn distance.Func) ([][]index.SearchResult, error) {
	truth := make([][]index.SearchResult, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		if err := rc.AcquireWorker(gctx); err != nil {
			break
		}
		g.Go(func() error {
			defer rc.ReleaseWorker()
			if err := gctx.Err(); err != nil {
				return err
			}
			truth[i] = exactSearch(live, q.Vector, k, fn)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return truth, nil
}
