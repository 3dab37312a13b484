package ports

import (
	"context"

	"github.com/aretw0/cyoa/pkg/domain"
)

// RunStore defines the interface for archiving finished runs.
type RunStore interface {
	// Save persists the run under run.ID.
	Save(ctx context.Context, run *domain.Run) error

	// Load retrieves a run.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (*domain.Run, error)

	// Delete removes a run.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of archived runs.
	List(ctx context.Context) ([]string, error)
}
