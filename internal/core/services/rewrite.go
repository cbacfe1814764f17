package services

import (
	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/logger"
	"github.com/custodia-labs/prrelink/internal/pathurl"
)

// RewriteResult reports what RewriteReferences changed.
type RewriteResult struct {
	// Updated is the number of references actually rewritten.
	Updated int

	// Changes lists each rewrite in reference order.
	Changes []domain.PathChange
}

// RewriteReferences applies mapping to doc in place. refs must have been
// extracted from doc. References without a destination are left untouched.
func RewriteReferences(
	doc *domain.ProjectDocument,
	refs []domain.PathReference,
	mapping *pathurl.Mapping,
) RewriteResult {
	var result RewriteResult

	for _, ref := range refs {
		dest, ok := mapping.Resolve(ref)
		if !ok {
			continue
		}

		encoded := pathurl.Encode(dest)

		var applied bool
		switch ref.Locator.Kind {
		case domain.LocatorAttribute:
			applied = doc.SetAttr(ref.Node, ref.Locator.Attribute, encoded)
		case domain.LocatorText:
			applied = doc.SetText(ref.Node, encoded)
		}
		if !applied {
			logger.Warn("Path reference on <%s %s> not found in document, skipped", ref.Element, ref.Locator)
			continue
		}

		logger.Debug("Mapped: %s -> %s", ref.DecodedPath, dest)
		result.Updated++
		result.Changes = append(result.Changes, domain.PathChange{
			Node:     ref.Node,
			Locator:  ref.Locator,
			Element:  ref.Element,
			OldValue: ref.RawValue,
			NewValue: encoded,
			OldPath:  ref.DecodedPath,
			NewPath:  dest,
		})
	}

	return result
}
