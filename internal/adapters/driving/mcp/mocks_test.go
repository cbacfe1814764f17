package mcp

import (
	"context"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driving"
)

// mockRelinkService is a mock implementation of driving.RelinkService.
type mockRelinkService struct {
	outcome *domain.RelinkOutcome
	report  *driving.InspectReport
	err     error

	lastRequest     domain.RelinkRequest
	lastInspectPath string
	lastRelocations []domain.RelocationEntry
}

func (m *mockRelinkService) Relink(_ context.Context, req domain.RelinkRequest) *domain.RelinkOutcome {
	m.lastRequest = req
	if m.outcome == nil {
		return &domain.RelinkOutcome{Success: true, Stage: domain.StageDone}
	}
	return m.outcome
}

func (m *mockRelinkService) Inspect(
	_ context.Context,
	path string,
	relocations []domain.RelocationEntry,
) (*driving.InspectReport, error) {
	m.lastInspectPath = path
	m.lastRelocations = relocations
	return m.report, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	runs      []domain.RelinkRun
	run       *domain.RelinkRun
	err       error
	lastLimit int
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.RelinkRun, error) {
	m.lastLimit = limit
	return m.runs, m.err
}

func (m *mockHistoryService) Get(_ context.Context, _ string) (*domain.RelinkRun, error) {
	return m.run, m.err
}
