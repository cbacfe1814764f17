package driven

import (
	"context"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

// RelocationSource loads a relocation table written by the asset copy step.
type RelocationSource interface {
	// Load reads the table at path. Entry order is preserved.
	Load(ctx context.Context, path string) ([]domain.RelocationEntry, error)
}
