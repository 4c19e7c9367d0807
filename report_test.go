package vecbench

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecbench/codec"
	"github.com/hupe1980/vecbench/index"
)

func sampleReport() *Report {
	return &Report{
		Index:       index.Config{Metric: "cosine", MaxLinks: index.Int(16)},
		Seed:        7,
		K:           10,
		DatasetSize: 1000,
		Dimension:   32,
		MainSize:    990,
		ControlSize: 10,
		Removed:     99,
		Phases: []PhaseTiming{
			{Name: PhaseInsert, Count: 990, Duration: time.Second},
			{Name: PhaseSearch, Count: 10, Duration: 0},
		},
		Latency:     LatencyStats{Mean: time.Millisecond, P50: time.Millisecond, P99: 2 * time.Millisecond},
		MeanRecall:  0.95,
		FinalSize:   891,
		CheckPassed: true,
	}
}

func TestPhaseTiming_Throughput(t *testing.T) {
	assert.InDelta(t, 990.0, PhaseTiming{Count: 990, Duration: time.Second}.Throughput(), 1e-9)
	assert.Zero(t, PhaseTiming{Count: 10}.Throughput())
	assert.Zero(t, PhaseTiming{Duration: time.Second}.Throughput())
}

func TestReport_WriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "cosine")
	assert.Contains(t, out, "max_links")
	assert.NotContains(t, out, "ef_construction")
	assert.Contains(t, out, "recall@10")
	assert.Contains(t, out, "0.9500")
	assert.Contains(t, out, "passed")
}

func TestReport_WriteTextCheckStates(t *testing.T) {
	r := sampleReport()

	r.CheckPassed = false
	var failed bytes.Buffer
	require.NoError(t, r.WriteText(&failed))
	assert.Contains(t, failed.String(), "FAILED")

	r.CheckSkipped = true
	var skipped bytes.Buffer
	require.NoError(t, r.WriteText(&skipped))
	assert.Contains(t, skipped.String(), "skipped")
}

func TestReport_WriteJSON(t *testing.T) {
	for _, c := range []codec.Codec{nil, codec.JSON{}, codec.GoJSON{}} {
		var buf bytes.Buffer
		require.NoError(t, sampleReport().WriteJSON(&buf, c))

		var got map[string]any
		require.NoError(t, codec.JSON{}.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "cosine", got["index"].(map[string]any)["metric"])
		assert.InDelta(t, 0.95, got["mean_recall"], 1e-9)
		assert.Equal(t, true, got["check_passed"])
		assert.Len(t, got["phases"], 2)
	}
}

func TestReport_GraphStats(t *testing.T) {
	r := sampleReport()

	var plain bytes.Buffer
	require.NoError(t, r.WriteText(&plain))
	assert.NotContains(t, plain.String(), "avg links")

	var encoded bytes.Buffer
	require.NoError(t, r.WriteJSON(&encoded, codec.JSON{}))
	assert.NotContains(t, encoded.String(), `"graph"`)

	r.Graph = &index.Stats{
		Nodes:     891,
		Dimension: 32,
		FreeIDs:   99,
		Levels: []index.LevelStats{
			{Level: 0, Nodes: 891, Links: 17820, AvgLinks: 20},
			{Level: 1, Nodes: 55, Links: 440, AvgLinks: 8},
		},
	}

	var text bytes.Buffer
	require.NoError(t, r.WriteText(&text))
	assert.Contains(t, text.String(), "avg links")
	assert.Contains(t, text.String(), "891 / 99")
	assert.Contains(t, text.String(), "20.00")

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf, codec.JSON{}))

	var got map[string]any
	require.NoError(t, codec.JSON{}.Unmarshal(buf.Bytes(), &got))
	graph := got["graph"].(map[string]any)
	assert.InDelta(t, 891, graph["nodes"], 1e-9)
	assert.Len(t, graph["levels"], 2)
}

func TestReport_Phase(t *testing.T) {
	r := sampleReport()

	p, ok := r.Phase(PhaseInsert)
	require.True(t, ok)
	assert.Equal(t, 990, p.Count)

	_, ok = r.Phase(PhaseCheck)
	assert.False(t, ok)
}

func TestSummarizeLatency(t *testing.T) {
	assert.Equal(t, LatencyStats{}, summarizeLatency(nil))

	samples := make([]time.Duration, 100)
	for i := range samples {
		samples[i] = time.Duration(100-i) * time.Millisecond
	}

	stats := summarizeLatency(samples)
	assert.Equal(t, 50500*time.Microsecond, stats.Mean)
	assert.Equal(t, 50*time.Millisecond, stats.P50)
	assert.Equal(t, 99*time.Millisecond, stats.P99)
	assert.Equal(t, 100*time.Millisecond, stats.Max)

	single := summarizeLatency([]time.Duration{time.Second})
	assert.Equal(t, time.Second, single.P50)
	assert.Equal(t, time.Second, single.P99)
}
