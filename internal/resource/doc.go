// Package resource implements the Controller that paces benchmark work.
//
// The Controller manages two resource types:
//
//   - Queries: token bucket pacing of the search phase (x/time/rate)
//   - Concurrency: a bound on parallel workers (x/sync/semaphore)
//
// # Query Pacing
//
//	rc := resource.NewController(resource.Config{
//	    QueryRate: 500, // queries per second
//	})
//
//	for _, q := range queries {
//	    if err := rc.WaitQuery(ctx); err != nil {
//	        return err
//	    }
//	    idx.Search(q, k)
//	}
//
// # Worker Limits
//
//	rc := resource.NewController(resource.Config{MaxWorkers: 4})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully: they become no-ops that
// only observe context cancellation.
package resource
