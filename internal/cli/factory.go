package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aretw0/nbtest"
	"github.com/aretw0/nbtest/internal/logging"
	"github.com/aretw0/nbtest/pkg/adapters/file"
	"github.com/aretw0/nbtest/pkg/adapters/process"
	"github.com/aretw0/nbtest/pkg/domain"
)

// RunOptions carries the flags shared by the notebook-driving commands.
type RunOptions struct {
	NotebookPath  string
	KernelName    string
	KernelsConfig string
	Refs          []string
	Debug         bool
}

func createLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(os.Stderr, level)
}

// createClient initializes an nbtest client with standard CLI conventions:
// the notebook is loaded from disk and cells run through a local interpreter
// picked from the kernel registry.
func createClient(opts RunOptions, logger *slog.Logger) (*nbtest.Client, *file.Loader, error) {
	loader := file.NewLoader(opts.NotebookPath)
	nb, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}

	// Convention: a kernels.yaml next to the notebook extends the registry.
	// Only the convention path is optional; a path the user named must exist.
	cfgPath := opts.KernelsConfig
	if cfgPath == "" {
		cfgPath = filepath.Join(filepath.Dir(opts.NotebookPath), "kernels.yaml")
	} else if _, err := os.Stat(cfgPath); err != nil {
		return nil, nil, fmt.Errorf("kernels config: %w", err)
	}
	kernels, err := process.LoadKernels(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	kernel, ok := kernels[opts.KernelName]
	if !ok {
		return nil, nil, fmt.Errorf("unknown kernel %q (configure it in %s)", opts.KernelName, cfgPath)
	}

	runner := process.NewRunner(kernel, process.WithBaseDir(filepath.Dir(opts.NotebookPath)))
	client, err := nbtest.New(nb, runner, nbtest.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return client, loader, nil
}

// NewClient builds a client using the standard CLI conventions.
// It is the entrypoint for commands that hold on to the client themselves
// (serve, mcp) instead of going through Run.
func NewClient(opts RunOptions) (*nbtest.Client, error) {
	logger := createLogger(opts.Debug)
	client, _, err := createClient(opts, logger)
	return client, err
}

// ParseRef interprets a CLI argument as a cell index when numeric, otherwise
// as a cell tag.
func ParseRef(raw string) nbtest.Ref {
	if idx, err := strconv.Atoi(raw); err == nil {
		return nbtest.Index(idx)
	}
	return nbtest.Tag(raw)
}

// ResolveRef applies the ParseRef convention directly to a document, for
// commands that inspect a notebook without driving it through a client.
func ResolveRef(nb *domain.Notebook, raw string) (int, error) {
	if idx, err := strconv.Atoi(raw); err == nil {
		if _, err := nb.Cell(idx); err != nil {
			return 0, err
		}
		return idx, nil
	}
	return nb.TagIndex(raw)
}
