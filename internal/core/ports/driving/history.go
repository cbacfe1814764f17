package driving

import (
	"context"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

// HistoryService exposes past relinking runs.
type HistoryService interface {
	// List returns the most recent runs first. A limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.RelinkRun, error)

	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*domain.RelinkRun, error)
}
