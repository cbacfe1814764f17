package domain

import "time"

// Outcome notes for runs that finish without rewriting anything.
const (
	NoteNoReferences  = "no path references found"
	NoteNoRelocations = "no matching relocations"
	NoteDryRun        = "dry run: output not written"
)

// RelinkRequest describes a single relinking run.
type RelinkRequest struct {
	// SourcePath is the project container to read.
	SourcePath string

	// DestinationPath is where the rewritten container is written.
	// Empty means overwrite SourcePath.
	DestinationPath string

	// Relocations is the table produced by the asset copy step.
	Relocations []RelocationEntry

	// DryRun runs every stage except Writing.
	DryRun bool
}

// Destination returns the effective output path.
func (r RelinkRequest) Destination() string {
	if r.DestinationPath == "" {
		return r.SourcePath
	}
	return r.DestinationPath
}

// RelinkOutcome is the single result record of a relinking run.
type RelinkOutcome struct {
	// Success is false only when a stage failed.
	Success bool

	// Stage is StageDone on success, otherwise the stage that failed.
	Stage Stage

	// ReferenceCount is the number of path references extracted.
	ReferenceCount int

	// UpdatedCount is the number of references actually rewritten.
	UpdatedCount int

	// UnmatchedCount is the number of references with no relocation.
	UnmatchedCount int

	// MalformedCount is the number of references that could not be decoded.
	MalformedCount int

	// Errors holds failure messages, each prefixed with the stage name.
	Errors []string

	// Notes holds non-fatal remarks such as NoteNoReferences.
	Notes []string

	// Changes lists every rewrite in extraction order.
	Changes []PathChange
}

// RelinkRun is a persisted record of one relinking run.
type RelinkRun struct {
	ID              string
	SourcePath      string
	DestinationPath string
	DryRun          bool
	StartedAt       time.Time
	FinishedAt      time.Time
	Outcome         RelinkOutcome
}

// Duration returns how long the run took.
func (r RelinkRun) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Result returns "success" or "failed" for display and metric labels.
func (r RelinkRun) Result() string {
	if r.Outcome.Success {
		return "success"
	}
	return "failed"
}
