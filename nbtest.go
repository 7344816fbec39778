package nbtest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/nbtest/internal/logging"
	"github.com/aretw0/nbtest/pkg/domain"
	"github.com/aretw0/nbtest/pkg/ports"
)

// Version of the nbtest library.
var Version = "0.3.0"

// Client drives a notebook document through a cell executor.
// It is a convenience layer: cell selection, code injection, and output
// extraction. Execution itself always happens in the executor.
type Client struct {
	nb     *domain.Notebook
	exec   ports.CellExecutor
	logger *slog.Logger
}

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithLogger sets a custom structured logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client around an existing notebook document and executor.
func New(nb *domain.Notebook, exec ports.CellExecutor, opts ...Option) (*Client, error) {
	if nb == nil {
		return nil, fmt.Errorf("notebook is required")
	}
	if exec == nil {
		return nil, fmt.Errorf("cell executor is required")
	}

	c := &Client{
		nb:     nb,
		exec:   exec,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Notebook returns the underlying document.
// The document reflects all executions and injections performed so far.
func (c *Client) Notebook() *domain.Notebook {
	return c.nb
}

// CellIndex resolves a cell tag to its index.
// Returns domain.ErrTagNotFound when no cell carries the tag.
func (c *Client) CellIndex(tag string) (int, error) {
	return c.nb.TagIndex(tag)
}

// Execute runs the referenced cells in order and returns them with outputs
// populated. Refs are built with Index or Tag.
func (c *Client) Execute(ctx context.Context, refs ...Ref) ([]*domain.Cell, error) {
	indexes := make([]int, len(refs))
	for i, ref := range refs {
		idx, err := ref.resolve(c.nb)
		if err != nil {
			return nil, err
		}
		indexes[i] = idx
	}

	executed := make([]*domain.Cell, 0, len(indexes))
	for _, idx := range indexes {
		c.logger.Debug("executing cell", "index", idx)
		cell, err := c.exec.ExecuteCell(ctx, c.nb, idx)
		if err != nil {
			return executed, fmt.Errorf("execute cell %d: %w", idx, err)
		}
		executed = append(executed, cell)
	}
	return executed, nil
}

// ExecuteCell runs a single referenced cell.
func (c *Client) ExecuteCell(ctx context.Context, ref Ref) (*domain.Cell, error) {
	cells, err := c.Execute(ctx, ref)
	if err != nil {
		return nil, err
	}
	return cells[0], nil
}

// OutputText returns the concatenated literal-text output of the referenced
// cell, trimmed of surrounding whitespace.
func (c *Client) OutputText(ref Ref) (string, error) {
	idx, err := ref.resolve(c.nb)
	if err != nil {
		return "", err
	}
	cell, err := c.nb.Cell(idx)
	if err != nil {
		return "", err
	}
	return cell.OutputText(), nil
}

// ExecuteResults returns the MIME bundles of the referenced cell's
// execute_result outputs.
func (c *Client) ExecuteResults(ref Ref) ([]domain.MIMEBundle, error) {
	idx, err := ref.resolve(c.nb)
	if err != nil {
		return nil, err
	}
	cell, err := c.nb.Cell(idx)
	if err != nil {
		return nil, err
	}
	return cell.ExecuteResults(), nil
}
