package ports

import (
	"context"

	"github.com/aretw0/nbtest/pkg/domain"
)

// NotebookLoader defines how a notebook document is retrieved.
// This allows the storage layer (filesystem, memory, remote) to be decoupled.
type NotebookLoader interface {
	// Load returns a fresh copy of the notebook document.
	Load() (*domain.Notebook, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying document changes.
	// It abstracts away the specific event details, signaling only that a reload is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
