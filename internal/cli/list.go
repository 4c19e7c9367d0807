package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <location>",
		Short: "List datasets in a directory or bucket",
		Long: `Prints one dataset location per line, ready to pass to run. The
location is a local directory, s3://bucket[/prefix] or
minio://endpoint/bucket[/prefix].`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			log, err := g.logger(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			locs, err := listDatasets(ctx, args[0])
			log.LogPhase(ctx, "list", len(locs), time.Since(start), err)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, loc := range locs {
				if _, err := fmt.Fprintln(out, loc); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
