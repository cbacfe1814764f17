package driven

import "github.com/custodia-labs/prrelink/internal/core/domain"

// RunObserver is notified after every relinking run, e.g. to export metrics.
// Observers must not block and their failures never affect the outcome.
type RunObserver interface {
	RunCompleted(run domain.RelinkRun)
}
