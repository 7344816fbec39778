// Package process executes notebook cells by piping their source to a local
// interpreter process. Each cell runs in a fresh process, so state does not
// persist between cells; sessions that need a live kernel belong behind a
// different ports.CellExecutor implementation.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/aretw0/nbtest/pkg/domain"
)

// Kernel defines the interpreter command a cell's source is piped to.
type Kernel struct {
	Command string
	Args    []string
	Env     map[string]string
}

// Runner implements ports.CellExecutor using local processes.
type Runner struct {
	kernel  Kernel
	baseDir string

	mu    sync.Mutex
	count int
}

// Option configures the runner.
type Option func(*Runner)

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) Option {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// NewRunner creates a process runner for the given kernel.
func NewRunner(kernel Kernel, opts ...Option) *Runner {
	r := &Runner{kernel: kernel}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ExecuteCell satisfies ports.CellExecutor.
// The cell's source is written to the interpreter's stdin; stdout and stderr
// come back as stream outputs. A non-zero exit additionally records an error
// output and returns an error.
func (r *Runner) ExecuteCell(ctx context.Context, nb *domain.Notebook, index int) (*domain.Cell, error) {
	cell, err := nb.Cell(index)
	if err != nil {
		return nil, err
	}
	if cell.Type != domain.CellTypeCode {
		return cell, nil
	}

	cmd := exec.CommandContext(ctx, r.kernel.Command, r.kernel.Args...)
	cmd.Stdin = strings.NewReader(string(cell.Source))
	cmd.Dir = r.baseDir

	if len(r.kernel.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range r.kernel.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	outputs := []domain.Output{}
	if stdout.Len() > 0 {
		outputs = append(outputs, domain.NewStreamOutput("stdout", stdout.String()))
	}
	if stderr.Len() > 0 {
		outputs = append(outputs, domain.NewStreamOutput("stderr", stderr.String()))
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			outputs = append(outputs, domain.NewErrorOutput(
				"ProcessError",
				fmt.Sprintf("%s exited with code %d", r.kernel.Command, exitErr.ExitCode()),
				strings.Split(strings.TrimRight(stderr.String(), "\n"), "\n")...,
			))
		}
		cell.Outputs = outputs
		return cell, fmt.Errorf("run %s: %w", r.kernel.Command, runErr)
	}

	r.mu.Lock()
	r.count++
	count := r.count
	r.mu.Unlock()

	cell.Outputs = outputs
	cell.ExecutionCount = &count
	return cell, nil
}
