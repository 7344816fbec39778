package ports

import (
	"context"

	"github.com/aretw0/nbtest/pkg/domain"
)

// CellExecutor runs a single notebook cell and records its outputs.
// It plays the role of the external notebook-execution client: all kernel
// communication, process handling, or scripting lives behind this interface.
//
// Implementations mutate the cell in place (outputs, execution count) and
// return it. The index is always valid for the given notebook; the client
// resolves tags and bounds before delegating.
type CellExecutor interface {
	// ExecuteCell executes the cell at index and returns it with outputs
	// populated. A non-nil error means execution failed; the cell may still
	// carry partial outputs (e.g. an error output) for inspection.
	ExecuteCell(ctx context.Context, nb *domain.Notebook, index int) (*domain.Cell, error)
}
