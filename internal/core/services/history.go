package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driven"
	"github.com/custodia-labs/prrelink/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads recorded relinking runs.
type HistoryService struct {
	runStore driven.RunStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(runStore driven.RunStore) *HistoryService {
	return &HistoryService{runStore: runStore}
}

// List returns the most recent runs first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.RelinkRun, error) {
	if s.runStore == nil {
		return nil, fmt.Errorf("run history: %w", domain.ErrNotImplemented)
	}
	return s.runStore.List(ctx, limit)
}

// Get retrieves a run by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.RelinkRun, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: run id is required", domain.ErrInvalidInput)
	}
	if s.runStore == nil {
		return nil, fmt.Errorf("run history: %w", domain.ErrNotImplemented)
	}
	return s.runStore.Get(ctx, id)
}
