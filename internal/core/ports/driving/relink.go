package driving

import (
	"context"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

// RelinkService rewrites media paths inside project containers.
type RelinkService interface {
	// Relink runs the full pipeline for one container. It never returns an
	// error: every failure is reported through the outcome.
	Relink(ctx context.Context, req domain.RelinkRequest) *domain.RelinkOutcome

	// Inspect reads a container and reports its path references without
	// writing anything. When relocations are given, each reference is
	// annotated with the destination it would be rewritten to.
	Inspect(ctx context.Context, path string, relocations []domain.RelocationEntry) (*InspectReport, error)
}

// InspectReport describes the path references of one container.
type InspectReport struct {
	// Path is the inspected container.
	Path string

	// Compressed is true for gzip containers.
	Compressed bool

	// RootElement is the qualified name of the document root.
	RootElement string

	// References lists every extracted reference in extraction order.
	References []ReferenceDetail

	// MalformedCount is the number of references that could not be decoded.
	MalformedCount int

	// MatchedCount is the number of references with a destination.
	MatchedCount int

	// ValidationErrors holds problems that would block writing this document.
	ValidationErrors []string
}

// ReferenceDetail is a path reference annotated for display.
type ReferenceDetail struct {
	domain.PathReference

	// Kind classifies the referenced file by extension.
	Kind domain.MediaKind

	// Destination is the mapped path, empty when unmatched.
	Destination string
}

// CountByKind tallies references per media kind.
func (r *InspectReport) CountByKind() map[domain.MediaKind]int {
	counts := make(map[domain.MediaKind]int)
	for _, ref := range r.References {
		counts[ref.Kind]++
	}
	return counts
}
