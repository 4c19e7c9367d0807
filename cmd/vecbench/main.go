package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/vecbench"
	"github.com/hupe1980/vecbench/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "vecbench:", err)
		if errors.Is(err, vecbench.ErrCheckFailed) {
			return 2
		}
		return 1
	}
	return 0
}
