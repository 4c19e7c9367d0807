package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/hupe1980/vecbench"
	"github.com/hupe1980/vecbench/index"
)

// Output formats of the run command.
const (
	outputText = "text"
	outputJSON = "json"
)

// fileConfig is the TOML layout of a run configuration file.
//
//	dataset = "s3://datasets/glove-100.txt.lz4"
//	seed = 42
//	remove_ratio = 0.1
//
//	[index]
//	metric = "cosine"
//	max_links = 16
//	insert_method = "link_diverse"
type fileConfig struct {
	Dataset     string       `toml:"dataset"`
	Index       index.Config `toml:"index"`
	ControlSize *int         `toml:"control_size"`
	Seed        int64        `toml:"seed"`
	K           int          `toml:"k"`
	RemoveRatio float64      `toml:"remove_ratio"`
	QueryRate   float64      `toml:"query_rate"`
	Workers     int          `toml:"workers"`
	EFSearch    int          `toml:"ef_search"`
	SkipCheck   bool         `toml:"skip_check"`
	Output      string       `toml:"output"`
	Codec       string       `toml:"codec"`
	MetricsFile string       `toml:"metrics_file"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Index:  index.Config{Metric: "cosine"},
		K:      vecbench.DefaultK,
		Output: outputText,
		Codec:  "go-json",
	}
}

// loadConfigFile decodes path over cfg. Keys absent from the file keep their
// value in cfg; unknown keys are an error.
func loadConfigFile(path string, cfg *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c fileConfig) runnerConfig() vecbench.Config {
	return vecbench.Config{
		Index:       c.Index,
		ControlSize: c.ControlSize,
		Seed:        c.Seed,
		K:           c.K,
		RemoveRatio: c.RemoveRatio,
		QueryRate:   c.QueryRate,
		Workers:     c.Workers,
		SkipCheck:   c.SkipCheck,
	}
}
