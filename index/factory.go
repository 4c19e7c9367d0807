package index

import (
	"strconv"

	"github.com/hupe1980/vecbench/distance"
	"github.com/hupe1980/vecbench/internal/hnsw"
)

// New builds the variant selected by cfg.Metric over a fresh graph.
//
// The metric is checked first, then the graph parameters. Any rejected value
// yields a *ConfigError and no index. optFns run after cfg is applied.
func New(cfg Config, optFns ...func(*hnsw.Options)) (Index, error) {
	metric, ok := distance.ParseMetric(cfg.Metric)
	if !ok {
		return nil, &ConfigError{Field: "metric", Token: cfg.Metric}
	}

	distFunc, err := distance.Provider(metric)
	if err != nil {
		return nil, &ConfigError{Field: "metric", Token: cfg.Metric}
	}

	opts := hnsw.DefaultOptions
	opts.DistanceFunc = distFunc

	if cfg.MaxLinks != nil {
		if *cfg.MaxLinks <= 0 {
			return nil, &ConfigError{Field: "max_links", Token: strconv.Itoa(*cfg.MaxLinks)}
		}
		opts.MaxLinks = *cfg.MaxLinks
	}

	if cfg.EFConstruction != nil {
		if *cfg.EFConstruction <= 0 {
			return nil, &ConfigError{Field: "ef_construction", Token: strconv.Itoa(*cfg.EFConstruction)}
		}
		opts.EFConstruction = *cfg.EFConstruction
	}

	if cfg.InsertMethod != nil {
		m, ok := hnsw.ParseInsertMethod(*cfg.InsertMethod)
		if !ok {
			return nil, &ConfigError{Field: "insert_method", Token: *cfg.InsertMethod}
		}
		opts.InsertMethod = m
	}

	if cfg.RemoveMethod != nil {
		m, ok := hnsw.ParseRemoveMethod(*cfg.RemoveMethod)
		if !ok {
			return nil, &ConfigError{Field: "remove_method", Token: *cfg.RemoveMethod}
		}
		opts.RemoveMethod = m
	}

	graph := hnsw.New(func(o *hnsw.Options) {
		*o = opts
		for _, fn := range optFns {
			fn(o)
		}
	})

	base := graphIndex{graph: graph, metric: metric}
	switch metric {
	case distance.MetricCosine:
		return &cosineIndex{graphIndex: base}, nil
	default:
		return &dotProductIndex{graphIndex: base}, nil
	}
}

// Make is the positional form of New.
func Make(metric string, maxLinks, efConstruction *int, insertMethod, removeMethod *string) (Index, error) {
	return New(Config{
		Metric:         metric,
		MaxLinks:       maxLinks,
		EFConstruction: efConstruction,
		InsertMethod:   insertMethod,
		RemoveMethod:   removeMethod,
	})
}
