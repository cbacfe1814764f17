package driven

import "context"

// ProjectFiles reads and writes project containers.
// This is the file-write collaborator: overwrite, backup and retry policy
// live in the implementation, never in core.
type ProjectFiles interface {
	// Read returns the full contents of the container at path.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write replaces the container at path with data.
	Write(ctx context.Context, path string, data []byte) error
}
