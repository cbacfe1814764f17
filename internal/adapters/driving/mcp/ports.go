package mcp

import (
	"github.com/custodia-labs/prrelink/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Relink rewrites and inspects project containers.
	Relink driving.RelinkService

	// History exposes past runs. Optional: without it the history
	// resource is empty.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Relink == nil {
		return ErrMissingRelinkService
	}
	return nil
}
