package vecbench

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/hupe1980/vecbench/dataset"
	"github.com/hupe1980/vecbench/distance"
	"github.com/hupe1980/vecbench/index"
	"github.com/hupe1980/vecbench/internal/hnsw"
	"github.com/hupe1980/vecbench/internal/resource"
)

// DefaultK is the number of neighbors searched when Config.K is not set.
const DefaultK = 10

// Config describes one benchmark run.
type Config struct {
	Index index.Config `toml:"index" json:"index"`

	// ControlSize overrides the default control set size of one percent.
	ControlSize *int `toml:"control_size,omitempty" json:"control_size,omitempty"`

	// Seed drives the shuffle and the graph's level generator.
	Seed int64 `toml:"seed" json:"seed"`

	// K is the number of neighbors per query. If 0, DefaultK.
	K int `toml:"k" json:"k"`

	// RemoveRatio is the fraction of the main set removed after population.
	RemoveRatio float64 `toml:"remove_ratio" json:"remove_ratio"`

	// QueryRate caps search queries per second. If 0, unlimited.
	QueryRate float64 `toml:"query_rate" json:"query_rate"`

	// Workers bounds ground truth parallelism. If 0, GOMAXPROCS.
	Workers int `toml:"workers" json:"workers"`

	SkipCheck bool `toml:"skip_check" json:"skip_check"`
}

// Validate reports configuration errors without touching a dataset. Index
// configuration errors are returned unchanged, as *index.ConfigError.
func (c Config) Validate() error {
	if _, err := index.New(c.Index); err != nil {
		return err
	}
	if c.RemoveRatio < 0 || c.RemoveRatio > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidRemoveRatio, c.RemoveRatio)
	}
	return nil
}

// Runner executes benchmark runs.
type Runner struct {
	cfg      Config
	opts     options
	newIndex func(index.Config, ...func(*hnsw.Options)) (index.Index, error)
}

// NewRunner creates a Runner for cfg.
func NewRunner(cfg Config, optFns ...Option) *Runner {
	if cfg.K <= 0 {
		cfg.K = DefaultK
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	opts := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Runner{cfg: cfg, opts: opts, newIndex: index.New}
}

// Config returns the effective configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

// Run benchmarks a fresh index over ds. ds itself is left untouched.
//
// Configuration errors are returned unchanged and before any dataset work.
// A failed structural check returns the complete report together with
// ErrCheckFailed.
func (r *Runner) Run(ctx context.Context, ds dataset.Dataset) (*Report, error) {
	seed := r.cfg.Seed
	graphOpts := append([]func(*hnsw.Options){func(o *hnsw.Options) {
		o.RandomSeed = &seed
	}}, r.opts.graphOptions...)

	idx, err := r.newIndex(r.cfg.Index, graphOpts...)
	if err != nil {
		return nil, err
	}
	if r.cfg.RemoveRatio < 0 || r.cfg.RemoveRatio > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRemoveRatio, r.cfg.RemoveRatio)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	distFunc, err := distance.Provider(idx.Metric())
	if err != nil {
		return nil, err
	}

	log := r.opts.logger.WithMetric(idx.Metric().String())
	mc := r.opts.metricsCollector
	rc := resource.NewController(resource.Config{
		QueryRate:  r.cfg.QueryRate,
		MaxWorkers: int64(r.cfg.Workers),
	})

	report := &Report{
		Index:       r.cfg.Index,
		Seed:        r.cfg.Seed,
		K:           r.cfg.K,
		RemoveRatio: r.cfg.RemoveRatio,
		DatasetSize: len(ds),
		Dimension:   ds.Dim(),
	}

	phase := func(name string, count int, fn func() error) error {
		start := time.Now()
		err := fn()
		d := time.Since(start)
		log.LogPhase(ctx, name, count, d, err)
		if err == nil {
			report.Phases = append(report.Phases, PhaseTiming{Name: name, Count: count, Duration: d})
		}
		return err
	}

	data := ds.Clone()
	if err := phase(PhasePrepare, len(data), func() error {
		idx.PrepareDataset(data)
		return nil
	}); err != nil {
		return nil, err
	}

	var main, control dataset.Dataset
	if err := phase(PhaseSplit, len(data), func() error {
		dataset.Shuffle(data, rand.New(rand.NewSource(seed))) //nolint:gosec // reproducible benchmark order
		main, control = dataset.Split(data, dataset.ControlSize(data, r.cfg.ControlSize))
		return nil
	}); err != nil {
		return nil, err
	}
	report.MainSize = len(main)
	report.ControlSize = len(control)

	if err := phase(PhaseInsert, len(main), func() error {
		for _, e := range main {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			err := idx.Insert(e.Key, e.Vector)
			mc.RecordInsert(time.Since(start), err)
			if err != nil {
				return fmt.Errorf("vecbench: insert %q: %w", e.Key, err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	removeCount := int(r.cfg.RemoveRatio * float64(len(main)))
	if err := phase(PhaseRemove, removeCount, func() error {
		for _, e := range main[:removeCount] {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			err := idx.Remove(e.Key)
			mc.RecordRemove(time.Since(start), err)
			if err != nil {
				return fmt.Errorf("vecbench: remove %q: %w", e.Key, err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	report.Removed = removeCount
	live := main[removeCount:]

	var truth [][]index.SearchResult
	if err := phase(PhaseGroundTruth, len(control), func() error {
		var err error
		truth, err = groundTruth(ctx, rc, live, control, r.cfg.K, distFunc)
		return err
	}); err != nil {
		return nil, err
	}

	latencies := make([]time.Duration, 0, len(control))
	var recallSum float64
	if err := phase(PhaseSearch, len(control), func() error {
		for i, q := range control {
			if err := rc.WaitQuery(ctx); err != nil {
				return err
			}
			start := time.Now()
			found, err := idx.Search(q.Vector, r.cfg.K)
			d := time.Since(start)
			mc.RecordSearch(r.cfg.K, d, err)
			if err != nil {
				return fmt.Errorf("vecbench: search %q: %w", q.Key, err)
			}
			latencies = append(latencies, d)
			recallSum += Recall(truth[i], found)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	report.Latency = summarizeLatency(latencies)
	if len(control) > 0 {
		report.MeanRecall = recallSum / float64(len(control))
	}
	report.FinalSize = idx.Size()
	if sp, ok := idx.(index.StatsProvider); ok {
		st := sp.Stats()
		report.Graph = &st
	}

	if p, ok := report.Phase(PhaseInsert); ok {
		report.InsertThroughput = p.Throughput()
	}
	if p, ok := report.Phase(PhaseRemove); ok {
		report.RemoveThroughput = p.Throughput()
	}
	if p, ok := report.Phase(PhaseSearch); ok {
		report.SearchThroughput = p.Throughput()
	}

	if r.cfg.SkipCheck {
		report.CheckSkipped = true
		return report, nil
	}

	start := time.Now()
	passed := idx.Check()
	d := time.Since(start)
	mc.RecordCheck(d, passed)
	log.LogCheck(ctx, passed, d)
	report.Phases = append(report.Phases, PhaseTiming{Name: PhaseCheck, Count: report.FinalSize, Duration: d})
	report.CheckPassed = passed
	if !passed {
		return report, ErrCheckFailed
	}

	return report, nil
}
