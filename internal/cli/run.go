package cli

import (
	"errors"
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hupe1980/vecbench"
	"github.com/hupe1980/vecbench/codec"
	"github.com/hupe1980/vecbench/index"
	"github.com/hupe1980/vecbench/metrics/prometheus"
)

type runFlags struct {
	configFile     string
	metric         string
	maxLinks       int
	efConstruction int
	insertMethod   string
	removeMethod   string
	controlSize    int
	seed           int64
	k              int
	removeRatio    float64
	queryRate      float64
	workers        int
	efSearch       int
	skipCheck      bool
	output         string
	codec          string
	metricsFile    string
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [dataset]",
		Short: "Run a benchmark over a dataset",
		Long: `Builds an index over the dataset, removes a share of it again and
measures search latency and recall@k of a held-out control set.

The dataset is a local path, s3://bucket/key or minio://endpoint/bucket/key.
Flags override values from --config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd, g, f, args)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configFile, "config", "c", "", "TOML run configuration")
	fl.StringVar(&f.metric, "metric", "cosine", "distance metric (cosine, dot_product)")
	fl.IntVar(&f.maxLinks, "max-links", 0, "maximum links per node and layer")
	fl.IntVar(&f.efConstruction, "ef-construction", 0, "candidate list size while inserting")
	fl.StringVar(&f.insertMethod, "insert-method", "", "neighbor selection (link_nearest, link_diverse)")
	fl.StringVar(&f.removeMethod, "remove-method", "", "repair on removal (no_link, compensate_incoming_links)")
	fl.IntVar(&f.controlSize, "control-size", 0, "control set size (default 1% of the dataset)")
	fl.Int64Var(&f.seed, "seed", 0, "seed for shuffling and level generation")
	fl.IntVar(&f.k, "k", vecbench.DefaultK, "neighbors per query")
	fl.Float64Var(&f.removeRatio, "remove-ratio", 0, "fraction of the main set removed after insertion")
	fl.Float64Var(&f.queryRate, "query-rate", 0, "maximum queries per second (0 = unlimited)")
	fl.IntVar(&f.workers, "workers", 0, "ground truth workers (default GOMAXPROCS)")
	fl.IntVar(&f.efSearch, "ef-search", 0, "lower bound of the search candidate list")
	fl.BoolVar(&f.skipCheck, "skip-check", false, "skip the structural check")
	fl.StringVarP(&f.output, "output", "o", outputText, "report format (text, json)")
	fl.StringVar(&f.codec, "codec", "go-json", "JSON codec for --output json (json, go-json)")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	return cmd
}

// resolve merges defaults, the config file, explicitly set flags and the
// positional dataset, in that order of precedence.
func (f *runFlags) resolve(cmd *cobra.Command, args []string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if f.configFile != "" {
		if err := loadConfigFile(f.configFile, &cfg); err != nil {
			return cfg, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("metric") {
		cfg.Index.Metric = f.metric
	}
	if fl.Changed("max-links") {
		cfg.Index.MaxLinks = index.Int(f.maxLinks)
	}
	if fl.Changed("ef-construction") {
		cfg.Index.EFConstruction = index.Int(f.efConstruction)
	}
	if fl.Changed("insert-method") {
		cfg.Index.InsertMethod = index.String(f.insertMethod)
	}
	if fl.Changed("remove-method") {
		cfg.Index.RemoveMethod = index.String(f.removeMethod)
	}
	if fl.Changed("control-size") {
		cfg.ControlSize = index.Int(f.controlSize)
	}
	if fl.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fl.Changed("k") {
		cfg.K = f.k
	}
	if fl.Changed("remove-ratio") {
		cfg.RemoveRatio = f.removeRatio
	}
	if fl.Changed("query-rate") {
		cfg.QueryRate = f.queryRate
	}
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("ef-search") {
		cfg.EFSearch = f.efSearch
	}
	if fl.Changed("skip-check") {
		cfg.SkipCheck = f.skipCheck
	}
	if fl.Changed("output") {
		cfg.Output = f.output
	}
	if fl.Changed("codec") {
		cfg.Codec = f.codec
	}
	if fl.Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if len(args) == 1 {
		cfg.Dataset = args[0]
	}

	if cfg.Dataset == "" {
		return cfg, errors.New("no dataset given")
	}
	if cfg.Output != outputText && cfg.Output != outputJSON {
		return cfg, fmt.Errorf("unknown output format %q", cfg.Output)
	}
	return cfg, nil
}

func runBenchmark(cmd *cobra.Command, g *globalFlags, f *runFlags, args []string) error {
	ctx := cmd.Context()

	cfg, err := f.resolve(cmd, args)
	if err != nil {
		return err
	}
	rcfg := cfg.runnerConfig()
	if err := rcfg.Validate(); err != nil {
		return err
	}

	var enc codec.Codec
	if cfg.Output == outputJSON {
		c, ok := codec.ByName(cfg.Codec)
		if !ok {
			return fmt.Errorf("unknown codec %q (want one of %v)", cfg.Codec, codec.Names())
		}
		enc = c
	}

	log, err := g.logger(cmd)
	if err != nil {
		return err
	}

	opts := []vecbench.Option{
		vecbench.WithLogger(log),
		vecbench.WithEFSearch(cfg.EFSearch),
	}

	var (
		reg       *prom.Registry
		collector *prometheus.Collector
	)
	if cfg.MetricsFile != "" {
		reg = prom.NewRegistry()
		collector, err = prometheus.New(reg)
		if err != nil {
			return err
		}
		opts = append(opts, vecbench.WithMetricsCollector(collector))
	}

	ds, err := loadDataset(ctx, cfg.Dataset)
	log.LogDataset(ctx, cfg.Dataset, len(ds), ds.Dim(), err)
	if err != nil {
		return err
	}

	report, runErr := vecbench.NewRunner(rcfg, opts...).Run(ctx, ds)
	if report == nil {
		return runErr
	}

	if collector != nil {
		collector.ObserveReport(report)
		if err := prom.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			return fmt.Errorf("write metrics %s: %w", cfg.MetricsFile, err)
		}
	}

	if enc != nil {
		err = report.WriteJSON(cmd.OutOrStdout(), enc)
	} else {
		err = report.WriteText(cmd.OutOrStdout())
	}
	if err != nil {
		return err
	}

	return runErr
}
