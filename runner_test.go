package vecbench

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecbench/dataset"
	"github.com/hupe1980/vecbench/distance"
	"github.com/hupe1980/vecbench/index"
	"github.com/hupe1980/vecbench/internal/hnsw"
	"github.com/hupe1980/vecbench/testutil"
)

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(Config{Index: index.Config{Metric: "cosine"}})

	assert.Equal(t, DefaultK, r.Config().K)
	assert.Positive(t, r.Config().Workers)
}

func TestRunner_Run(t *testing.T) {
	ds := testutil.NewRNG(1).UnitDataset(1000, 16)
	snapshot := ds.Clone()

	mc := &BasicMetricsCollector{}
	r := NewRunner(Config{
		Index:       index.Config{Metric: "cosine", MaxLinks: index.Int(16), EFConstruction: index.Int(100)},
		Seed:        42,
		K:           10,
		RemoveRatio: 0.1,
		Workers:     4,
	}, WithMetricsCollector(mc), WithEFSearch(100))

	report, err := r.Run(t.Context(), ds)
	require.NoError(t, err)

	assert.Equal(t, snapshot, ds, "input dataset must not be modified")

	assert.Equal(t, 1000, report.DatasetSize)
	assert.Equal(t, 16, report.Dimension)
	assert.Equal(t, 10, report.ControlSize)
	assert.Equal(t, 990, report.MainSize)
	assert.Equal(t, 99, report.Removed)
	assert.Equal(t, 891, report.FinalSize)
	assert.True(t, report.CheckPassed)
	assert.False(t, report.CheckSkipped)
	assert.GreaterOrEqual(t, report.MeanRecall, 0.9)
	assert.Positive(t, report.InsertThroughput)
	assert.Positive(t, report.Latency.P99)
	assert.GreaterOrEqual(t, report.Latency.P99, report.Latency.P50)

	require.NotNil(t, report.Graph)
	assert.Equal(t, report.FinalSize, report.Graph.Nodes)
	assert.Equal(t, 16, report.Graph.Dimension)
	require.NotEmpty(t, report.Graph.Levels)
	assert.Equal(t, report.FinalSize, report.Graph.Levels[0].Nodes)
	assert.Equal(t, uint64(report.Removed), report.Graph.FreeIDs)

	names := make([]string, len(report.Phases))
	for i, p := range report.Phases {
		names[i] = p.Name
	}
	assert.Equal(t, []string{
		PhasePrepare, PhaseSplit, PhaseInsert, PhaseRemove, PhaseGroundTruth, PhaseSearch, PhaseCheck,
	}, names)

	stats := mc.GetStats()
	assert.Equal(t, int64(990), stats.InsertCount)
	assert.Equal(t, int64(99), stats.RemoveCount)
	assert.Equal(t, int64(10), stats.SearchCount)
	assert.Equal(t, int64(1), stats.CheckCount)
	assert.Zero(t, stats.CheckFailures)
}

func TestRunner_Deterministic(t *testing.T) {
	ds := testutil.NewRNG(3).UnitDataset(300, 8)
	cfg := Config{Index: index.Config{Metric: "dot_product"}, Seed: 9, ControlSize: index.Int(20)}

	a, err := NewRunner(cfg).Run(t.Context(), ds)
	require.NoError(t, err)
	b, err := NewRunner(cfg).Run(t.Context(), ds)
	require.NoError(t, err)

	assert.Equal(t, a.MeanRecall, b.MeanRecall)
	assert.Equal(t, a.FinalSize, b.FinalSize)
	assert.Equal(t, 20, a.ControlSize)
}

func TestRunner_ConfigErrors(t *testing.T) {
	ds := testutil.NewRNG(1).UnitDataset(10, 4)

	_, err := NewRunner(Config{Index: index.Config{Metric: "euclidean"}}).Run(t.Context(), ds)
	var cfgErr *index.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "metric", cfgErr.Field)
	assert.ErrorIs(t, err, index.ErrInvalidConfig)

	_, err = NewRunner(Config{
		Index: index.Config{Metric: "cosine", RemoveMethod: index.String("link_nearest")},
	}).Run(t.Context(), ds)
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "remove_method", cfgErr.Field)
	assert.Equal(t, "link_nearest", cfgErr.Token)

	_, err = NewRunner(Config{Index: index.Config{Metric: "cosine"}, RemoveRatio: 1.5}).Run(t.Context(), ds)
	assert.ErrorIs(t, err, ErrInvalidRemoveRatio)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		field   string
		wantErr error
	}{
		{"valid", Config{Index: index.Config{Metric: "cosine"}, RemoveRatio: 0.5}, "", nil},
		{"unknown metric", Config{Index: index.Config{Metric: "bogus_metric"}}, "metric", index.ErrInvalidConfig},
		{"zero max links", Config{Index: index.Config{Metric: "cosine", MaxLinks: index.Int(0)}}, "max_links", index.ErrInvalidConfig},
		{"remove ratio above one", Config{Index: index.Config{Metric: "cosine"}, RemoveRatio: 1.5}, "", ErrInvalidRemoveRatio},
		{"negative remove ratio", Config{Index: index.Config{Metric: "dot_product"}, RemoveRatio: -0.1}, "", ErrInvalidRemoveRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)

			var cfgErr *index.ConfigError
			if tt.field != "" {
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, tt.field, cfgErr.Field)
			} else {
				assert.False(t, errors.As(err, &cfgErr))
			}
		})
	}
}

func TestRunner_InvalidDataset(t *testing.T) {
	ds := dataset.Dataset{
		{Key: "a", Vector: []float32{1, 0}},
		{Key: "b", Vector: []float32{1, 0, 0}},
	}
	_, err := NewRunner(Config{Index: index.Config{Metric: "cosine"}}).Run(t.Context(), ds)
	assert.Error(t, err)
}

func TestRunner_EmptyDataset(t *testing.T) {
	report, err := NewRunner(Config{Index: index.Config{Metric: "cosine"}}).Run(t.Context(), nil)
	require.NoError(t, err)

	assert.Zero(t, report.ControlSize)
	assert.Zero(t, report.FinalSize)
	assert.True(t, report.CheckPassed)
}

func TestRunner_RemoveAll(t *testing.T) {
	ds := testutil.NewRNG(5).UnitDataset(200, 8)
	report, err := NewRunner(Config{
		Index:       index.Config{Metric: "cosine"},
		RemoveRatio: 1,
	}).Run(t.Context(), ds)
	require.NoError(t, err)

	assert.Zero(t, report.FinalSize)
	assert.Equal(t, 198, report.Removed)
	assert.InDelta(t, 1.0, report.MeanRecall, 1e-9, "no live entries means nothing to miss")
	assert.True(t, report.CheckPassed)
}

func TestRunner_SkipCheck(t *testing.T) {
	ds := testutil.NewRNG(1).UnitDataset(100, 4)
	report, err := NewRunner(Config{Index: index.Config{Metric: "cosine"}, SkipCheck: true}).Run(t.Context(), ds)
	require.NoError(t, err)

	assert.True(t, report.CheckSkipped)
	_, ok := report.Phase(PhaseCheck)
	assert.False(t, ok)
}

func TestRunner_Cancelled(t *testing.T) {
	ds := testutil.NewRNG(1).UnitDataset(100, 4)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewRunner(Config{Index: index.Config{Metric: "cosine"}}).Run(ctx, ds)
	assert.ErrorIs(t, err, context.Canceled)
}

// brokenIndex passes every operation to a real index but fails its check.
type brokenIndex struct {
	index.Index
}

func (brokenIndex) Check() bool { return false }

func TestRunner_CheckFailed(t *testing.T) {
	ds := testutil.NewRNG(1).UnitDataset(100, 4)

	mc := &BasicMetricsCollector{}
	r := NewRunner(Config{Index: index.Config{Metric: "cosine"}}, WithMetricsCollector(mc))
	r.newIndex = func(cfg index.Config, optFns ...func(*hnsw.Options)) (index.Index, error) {
		idx, err := index.New(cfg, optFns...)
		if err != nil {
			return nil, err
		}
		return brokenIndex{Index: idx}, nil
	}

	report, err := r.Run(t.Context(), ds)
	require.ErrorIs(t, err, ErrCheckFailed)
	require.NotNil(t, report)
	assert.False(t, report.CheckPassed)
	assert.Nil(t, report.Graph, "wrapped index does not report its shape")
	assert.Equal(t, int64(1), mc.GetStats().CheckFailures)
}

// failingIndex rejects every insert.
type failingIndex struct {
	index.Index
}

func (failingIndex) Insert(string, []float32) error { return errors.New("disk full") }

func TestRunner_InsertError(t *testing.T) {
	ds := testutil.NewRNG(1).UnitDataset(100, 4)

	r := NewRunner(Config{Index: index.Config{Metric: "cosine"}})
	r.newIndex = func(cfg index.Config, optFns ...func(*hnsw.Options)) (index.Index, error) {
		idx, err := index.New(cfg, optFns...)
		if err != nil {
			return nil, err
		}
		return failingIndex{Index: idx}, nil
	}

	_, err := r.Run(t.Context(), ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestExactSearch(t *testing.T) {
	live := dataset.Dataset{
		{Key: "b", Vector: []float32{1, 0}},
		{Key: "a", Vector: []float32{1, 0}},
		{Key: "c", Vector: []float32{0, 1}},
	}

	got := exactSearch(live, []float32{1, 0}, 2, distance.CosineDistance)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Key, "ties break by key")
	assert.Equal(t, "b", got[1].Key)

	assert.Nil(t, exactSearch(live, []float32{1, 0}, 0, distance.CosineDistance))
	assert.Len(t, exactSearch(live, []float32{1, 0}, 10, distance.CosineDistance), 3)
}

func TestGroundTruth_MatchesBruteForce(t *testing.T) {
	rng := testutil.NewRNG(11)
	live := rng.UnitDataset(200, 8)
	queries := rng.UnitDataset(20, 8)

	truth, err := groundTruth(t.Context(), nil, live, queries, 5, distance.DotProductDistance)
	require.NoError(t, err)
	require.Len(t, truth, len(queries))

	for i, q := range queries {
		want := testutil.BruteForceSearch(live, q.Vector, 5, distance.DotProductDistance)
		require.Len(t, truth[i], len(want))
		for j := range want {
			assert.Equal(t, want[j].Key, truth[i][j].Key)
		}
	}
}
