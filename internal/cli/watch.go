package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/nbtest/internal/presentation/tui"
	"github.com/aretw0/nbtest/pkg/adapters/file"
)

// RunWatch executes the notebook in development mode, re-running on file
// changes until the context is canceled.
func RunWatch(ctx context.Context, opts RunOptions, out io.Writer) error {
	tui.PrintBanner()
	logger := createLogger(opts.Debug)

	loader := file.NewLoader(opts.NotebookPath)
	changes, err := loader.Watch(ctx)
	if err != nil {
		return err
	}

	logger.Info("Starting watcher", "path", opts.NotebookPath, "kernel", opts.KernelName)

	for {
		if err := Run(ctx, opts, out); err != nil {
			// Keep watching: a broken edit should not kill the loop.
			logger.Error("Run failed", "err", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			fmt.Fprintln(out, "--- notebook changed, re-running ---")
		}
	}
}
