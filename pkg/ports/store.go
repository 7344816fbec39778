package ports

import (
	"context"

	"github.com/aretw0/nbtest/pkg/domain"
)

// SessionStore defines the interface for persisting executed notebook
// documents between runs. This allows a driving session (CLI, HTTP, MCP)
// to snapshot a notebook with its outputs and inspect it later.
type SessionStore interface {
	// Save persists the notebook for a given session ID.
	Save(ctx context.Context, sessionID string, nb *domain.Notebook) error

	// Load retrieves the notebook for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Notebook, error)

	// Delete removes the notebook for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
