// Package vecbench benchmarks approximate nearest neighbor indexes.
//
// A run prepares a dataset for the index's metric, shuffles it with a seeded
// generator, splits off a control set, populates the index with the rest,
// optionally removes a share of it again and then measures search latency
// and recall@k of every control vector against exact ground truth.
//
// # Quick Start
//
//	ds, _ := dataset.Load(ctx, blobstore.NewLocalStore("./data"), "sift.fvecs.zst")
//
//	runner := vecbench.NewRunner(vecbench.Config{
//	    Index: index.Config{
//	        Metric:       "cosine",
//	        MaxLinks:     index.Int(16),
//	        InsertMethod: index.String("link_diverse"),
//	    },
//	    Seed:        42,
//	    RemoveRatio: 0.1,
//	}, vecbench.WithLogger(vecbench.NewTextLogger(slog.LevelInfo)))
//
//	report, err := runner.Run(ctx, ds)
//	if err != nil && !errors.Is(err, vecbench.ErrCheckFailed) {
//	    return err
//	}
//	report.WriteText(os.Stdout)
//
// # Indexes
//
// Package index provides the polymorphic Index and its factory. Each metric
// variant carries its own dataset preprocessing: cosine normalizes vectors to
// unit length, dot_product uses them as given.
//
// # Observability
//
// Runner reports every operation to a MetricsCollector. BasicMetricsCollector
// keeps atomic counters in memory; package metrics/prometheus exports the same
// events as Prometheus histograms.
package vecbench
