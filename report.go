package vecbench

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/hupe1980/vecbench/codec"
	"github.com/hupe1980/vecbench/index"
)

// Phase names, in execution order.
const (
	PhasePrepare     = "prepare"
	PhaseSplit       = "split"
	PhaseInsert      = "insert"
	PhaseRemove      = "remove"
	PhaseGroundTruth = "ground_truth"
	PhaseSearch      = "search"
	PhaseCheck       = "check"
)

// PhaseTiming is the wall time of one phase.
type PhaseTiming struct {
	Name     string        `json:"name"`
	Count    int           `json:"count"`
	Duration time.Duration `json:"duration_ns"`
}

// Throughput returns operations per second, or 0 for an empty phase.
func (p PhaseTiming) Throughput() float64 {
	if p.Count == 0 || p.Duration <= 0 {
		return 0
	}
	return float64(p.Count) / p.Duration.Seconds()
}

// LatencyStats summarizes per-query search latency.
type LatencyStats struct {
	Mean time.Duration `json:"mean_ns"`
	P50  time.Duration `json:"p50_ns"`
	P99  time.Duration `json:"p99_ns"`
	Max  time.Duration `json:"max_ns"`
}

// Report is the outcome of one benchmark run.
type Report struct {
	Index       index.Config `json:"index"`
	Seed        int64        `json:"seed"`
	K           int          `json:"k"`
	RemoveRatio float64      `json:"remove_ratio"`

	DatasetSize int `json:"dataset_size"`
	Dimension   int `json:"dimension"`
	MainSize    int `json:"main_size"`
	ControlSize int `json:"control_size"`
	Removed     int `json:"removed"`

	Phases []PhaseTiming `json:"phases"`

	InsertThroughput float64 `json:"insert_throughput"`
	RemoveThroughput float64 `json:"remove_throughput"`
	SearchThroughput float64 `json:"search_throughput"`

	Latency    LatencyStats `json:"latency"`
	MeanRecall float64      `json:"mean_recall"`

	// Graph is the index shape after the search phase, when the index
	// reports one.
	Graph *index.Stats `json:"graph,omitempty"`

	FinalSize    int  `json:"final_size"`
	CheckSkipped bool `json:"check_skipped"`
	CheckPassed  bool `json:"check_passed"`
}

// Phase returns the timing of the named phase.
func (r *Report) Phase(name string) (PhaseTiming, bool) {
	for _, p := range r.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return PhaseTiming{}, false
}

// WriteText writes a human-readable summary.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "metric\t%s\n", r.Index.Metric)
	if r.Index.MaxLinks != nil {
		fmt.Fprintf(tw, "max_links\t%d\n", *r.Index.MaxLinks)
	}
	if r.Index.EFConstruction != nil {
		fmt.Fprintf(tw, "ef_construction\t%d\n", *r.Index.EFConstruction)
	}
	if r.Index.InsertMethod != nil {
		fmt.Fprintf(tw, "insert_method\t%s\n", *r.Index.InsertMethod)
	}
	if r.Index.RemoveMethod != nil {
		fmt.Fprintf(tw, "remove_method\t%s\n", *r.Index.RemoveMethod)
	}
	fmt.Fprintf(tw, "seed\t%d\n", r.Seed)
	fmt.Fprintf(tw, "k\t%d\n", r.K)
	fmt.Fprintf(tw, "dataset\t%d x %d\n", r.DatasetSize, r.Dimension)
	fmt.Fprintf(tw, "main / control\t%d / %d\n", r.MainSize, r.ControlSize)
	fmt.Fprintf(tw, "removed\t%d\n", r.Removed)

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "phase\tcount\tduration\tops/s")
	for _, p := range r.Phases {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.1f\n", p.Name, p.Count, p.Duration.Round(time.Microsecond), p.Throughput())
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "latency mean / p50 / p99\t%s / %s / %s\n",
		r.Latency.Mean.Round(time.Microsecond),
		r.Latency.P50.Round(time.Microsecond),
		r.Latency.P99.Round(time.Microsecond),
	)
	fmt.Fprintf(tw, "recall@%d\t%.4f\n", r.K, r.MeanRecall)
	fmt.Fprintf(tw, "final size\t%d\n", r.FinalSize)

	if r.Graph != nil {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "graph nodes / free ids\t%d / %d\n", r.Graph.Nodes, r.Graph.FreeIDs)
		fmt.Fprintln(tw, "level\tnodes\tlinks\tavg links")
		for _, l := range r.Graph.Levels {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%.2f\n", l.Level, l.Nodes, l.Links, l.AvgLinks)
		}
		fmt.Fprintln(tw)
	}

	switch {
	case r.CheckSkipped:
		fmt.Fprintln(tw, "check\tskipped")
	case r.CheckPassed:
		fmt.Fprintln(tw, "check\tpassed")
	default:
		fmt.Fprintln(tw, "check\tFAILED")
	}

	return tw.Flush()
}

type indentMarshaler interface {
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
}

// WriteJSON writes the report encoded with c, indented when c supports it.
// If c is nil, codec.Default is used.
func (r *Report) WriteJSON(w io.Writer, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}
	var (
		b   []byte
		err error
	)
	if ic, ok := c.(indentMarshaler); ok {
		b, err = ic.MarshalIndent(r, "", "  ")
	} else {
		b, err = c.Marshal(r)
	}
	if err != nil {
		return fmt.Errorf("vecbench: encode report with %s: %w", c.Name(), err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// summarizeLatency computes mean and nearest-rank percentiles. It sorts
// samples in place.
func summarizeLatency(samples []time.Duration) LatencyStats {
	if len(samples) == 0 {
		return LatencyStats{}
	}
	slices.Sort(samples)

	var total time.Duration
	for _, s := range samples {
		total += s
	}

	return LatencyStats{
		Mean: total / time.Duration(len(samples)),
		P50:  percentile(samples, 50),
		P99:  percentile(samples, 99),
		Max:  samples[len(samples)-1],
	}
}

// percentile returns the nearest-rank p-th percentile of sorted samples.
func percentile(sorted []time.Duration, p int) time.Duration {
	rank := (p*len(sorted) + 99) / 100
	return sorted[min(max(rank-1, 0), len(sorted)-1)]
}
