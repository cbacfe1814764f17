package driven

import (
	"github.com/custodia-labs/prrelink/internal/core/domain"
)

// ProjectCodec converts between container bytes and a ProjectDocument.
// Implementations are pure transforms; they never touch the file system.
type ProjectCodec interface {
	// Decode decompresses (when needed) and parses a container.
	// Failures are *domain.FormatError values.
	Decode(data []byte) (*domain.ProjectDocument, error)

	// Encode serialises and (when configured) compresses a document.
	Encode(doc *domain.ProjectDocument) ([]byte, error)

	// Compressed reports whether data is in the compressed container form.
	Compressed(data []byte) bool
}
