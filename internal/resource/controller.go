package resource

import (
	"context"
	"math"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// QueryRate is the maximum number of search queries per second.
	// If 0, unlimited.
	QueryRate float64

	// QueryBurst is the number of queries allowed to exceed QueryRate at once.
	// If 0, defaults to 1.
	QueryBurst int

	// MaxWorkers is the maximum number of concurrent workers.
	// If 0, defaults to 1.
	MaxWorkers int64
}

// Controller throttles queries and bounds worker concurrency.
type Controller struct {
	cfg Config

	// Concurrency
	workerSem *semaphore.Weighted

	// Queries
	queryLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}
	if cfg.QueryBurst <= 0 {
		cfg.QueryBurst = 1
	}

	c := &Controller{
		cfg:       cfg,
		workerSem: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.QueryRate > 0 && !math.IsInf(cfg.QueryRate, 1) {
		c.queryLimiter = rate.NewLimiter(rate.Limit(cfg.QueryRate), cfg.QueryBurst)
	}

	return c
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// WaitQuery blocks until the query limit allows one more query.
func (c *Controller) WaitQuery(ctx context.Context) error {
	if c == nil || c.queryLimiter == nil {
		return ctx.Err()
	}
	return c.queryLimiter.Wait(ctx)
}

// AcquireWorker reserves a worker slot.
// Blocks if all slots are busy.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return ctx.Err()
	}
	return c.workerSem.Acquire(ctx, 1)
}

// ReleaseWorker releases a worker slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.workerSem.Release(1)
}
