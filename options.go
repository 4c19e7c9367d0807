package vecbench

import "github.com/hupe1980/vecbench/internal/hnsw"

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	graphOptions     []func(*hnsw.Options)
}

// Option configures a Runner.
type Option func(*options)

// WithLogger sets the logger used for phase reporting.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector that receives per-operation metrics.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithEFSearch sets the lower bound of the graph's search candidate list.
// Values <= 0 keep the default.
func WithEFSearch(ef int) Option {
	return func(o *options) {
		if ef <= 0 {
			return
		}
		o.graphOptions = append(o.graphOptions, func(g *hnsw.Options) {
			g.EFSearch = ef
		})
	}
}
