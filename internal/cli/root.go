package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/vecbench"
)

// version is set at build time via -ldflags.
var version = "dev"

type globalFlags struct {
	logLevel string
	logJSON  bool
}

// NewRootCmd builds the vecbench command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "vecbench",
		Short:         "Benchmark approximate nearest neighbor indexes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "emit logs as JSON")

	cmd.AddCommand(
		newRunCmd(g),
		newGenerateCmd(g),
		newListCmd(g),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// logger builds the logger selected by --log-level and --log-json. Logs go
// to the command's error stream.
func (g *globalFlags) logger(cmd *cobra.Command) (*vecbench.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	if g.logJSON {
		return vecbench.NewLogger(slog.NewJSONHandler(cmd.ErrOrStderr(), opts)), nil
	}
	return vecbench.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), opts)), nil
}
