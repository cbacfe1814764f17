package driven

import (
	"context"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

// RunStore persists relinking run history.
type RunStore interface {
	// Save stores a completed run.
	Save(ctx context.Context, run domain.RelinkRun) error

	// Get retrieves a run by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.RelinkRun, error)

	// List returns the most recent runs first. A limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.RelinkRun, error)
}
