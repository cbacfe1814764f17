package services

import (
	"strings"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/logger"
	"github.com/custodia-labs/prrelink/internal/pathurl"
)

// ExtractReferences scans doc for every path-bearing location in schema.
//
// Attribute references come first, in document order and, within an
// element, in schema order. Text references follow in document order; an
// element that already yielded an attribute reference is skipped, as is any
// element whose content is not purely text. Blank values are ignored.
// A value that cannot be decoded is kept with Malformed set.
func ExtractReferences(doc *domain.ProjectDocument, schema domain.ProjectSchema) []domain.PathReference {
	var refs []domain.PathReference
	attributed := make(map[domain.NodeID]bool)

	doc.Elements(func(id domain.NodeID, n domain.Node) {
		for _, name := range schema.PathAttributes {
			value, ok := doc.Attr(id, name)
			if !ok || strings.TrimSpace(value) == "" {
				continue
			}
			refs = append(refs, newReference(id, n.Name, domain.AttributeLocator(name), name, value))
			attributed[id] = true
		}
	})

	doc.Elements(func(id domain.NodeID, n domain.Node) {
		if attributed[id] || !schema.IsPathElement(n.Name) {
			return
		}
		text, ok := doc.TextContent(id)
		if !ok || strings.TrimSpace(text) == "" {
			return
		}
		refs = append(refs, newReference(id, n.Name, domain.TextLocator(), n.Name, text))
	})

	return refs
}

func newReference(id domain.NodeID, element string, loc domain.Locator, name, raw string) domain.PathReference {
	ref := domain.PathReference{
		Node:     id,
		Locator:  loc,
		Element:  element,
		Name:     name,
		RawValue: raw,
	}

	decoded, err := pathurl.Decode(strings.TrimSpace(raw))
	if err != nil {
		logger.Debug("Keeping malformed path on <%s %s>: %v", element, loc, err)
		ref.DecodedPath = raw
		ref.Malformed = true
		return ref
	}
	ref.DecodedPath = decoded
	return ref
}

func countMalformed(refs []domain.PathReference) int {
	n := 0
	for _, ref := range refs {
		if ref.Malformed {
			n++
		}
	}
	return n
}
