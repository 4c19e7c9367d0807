package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/vecbench/dataset"
)

type generateFlags struct {
	count int
	dim   int
	seed  int64
	unit  bool
}

func newGenerateCmd(g *globalFlags) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate <location>",
		Short: "Write a synthetic Gaussian dataset",
		Long: `Writes count random vectors keyed vec-<i>. The encoding follows the
name: .fvecs selects fvecs, anything else text; a trailing .zst or .lz4
compresses the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if f.count <= 0 || f.dim <= 0 {
				return fmt.Errorf("count and dim must be positive, got %d and %d", f.count, f.dim)
			}

			log, err := g.logger(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			ds := dataset.Synthetic(f.count, f.dim, rand.New(rand.NewSource(f.seed)), f.unit) // nolint gosec

			n, err := saveDataset(ctx, args[0], ds)
			log.LogPhase(ctx, "generate", len(ds), time.Since(start), err)
			if err != nil {
				return err
			}

			cmd.Printf("wrote %d vectors (%d bytes) to %s\n", len(ds), n, args[0])
			return nil
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&f.count, "count", "n", 10000, "number of vectors")
	fl.IntVarP(&f.dim, "dim", "d", 128, "vector dimension")
	fl.Int64Var(&f.seed, "seed", 1, "random seed")
	fl.BoolVar(&f.unit, "unit", false, "normalize vectors to unit length")

	return cmd
}
