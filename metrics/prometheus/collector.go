package prometheus

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/vecbench"
)

const namespace = "vecbench"

// LatencyBuckets spans 1µs to ~1s, which covers single graph operations.
var LatencyBuckets = prom.ExponentialBuckets(1e-6, 2, 20)

// Collector implements vecbench.MetricsCollector on Prometheus metrics.
type Collector struct {
	opLatency *prom.HistogramVec
	ops       *prom.CounterVec
	checks    *prom.CounterVec
	recall    prom.Gauge
	indexSize prom.Gauge
	phase     *prom.GaugeVec
}

var _ vecbench.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func New(reg prom.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of index operations",
			Buckets:   LatencyBuckets,
		}, []string{"op", "status"}),
		ops: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total index operations",
		}, []string{"op", "status"}),
		checks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Structural checks by outcome",
		}, []string{"result"}),
		recall: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "recall",
			Help:      "Mean recall@k of the last run",
		}),
		indexSize: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "index_size",
			Help:      "Live keys in the index after the last run",
		}),
		phase: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Wall time of each phase of the last run",
		}, []string{"phase"}),
	}

	for _, m := range []prom.Collector{c.opLatency, c.ops, c.checks, c.recall, c.indexSize, c.phase} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (c *Collector) observe(op string, d time.Duration, err error) {
	s := status(err)
	c.opLatency.WithLabelValues(op, s).Observe(d.Seconds())
	c.ops.WithLabelValues(op, s).Inc()
}

// RecordInsert implements vecbench.MetricsCollector.
func (c *Collector) RecordInsert(d time.Duration, err error) {
	c.observe("insert", d, err)
}

// RecordRemove implements vecbench.MetricsCollector.
func (c *Collector) RecordRemove(d time.Duration, err error) {
	c.observe("remove", d, err)
}

// RecordSearch implements vecbench.MetricsCollector. k is not a label to
// keep cardinality low.
func (c *Collector) RecordSearch(_ int, d time.Duration, err error) {
	c.observe("search", d, err)
}

// RecordCheck implements vecbench.MetricsCollector.
func (c *Collector) RecordCheck(d time.Duration, passed bool) {
	result := "passed"
	if !passed {
		result = "failed"
	}
	c.checks.WithLabelValues(result).Inc()
	c.opLatency.WithLabelValues("check", "success").Observe(d.Seconds())
}

// ObserveReport sets the run-level gauges from r.
func (c *Collector) ObserveReport(r *vecbench.Report) {
	if r == nil {
		return
	}
	c.recall.Set(r.MeanRecall)
	c.indexSize.Set(float64(r.FinalSize))
	for _, p := range r.Phases {
		c.phase.WithLabelValues(p.Name).Set(p.Duration.Seconds())
	}
}
