package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

// ValidateDocument checks doc before it is persisted. Every check runs so
// all problems are reported together in a *domain.ValidationError.
//
// The markup check on path values is a heuristic, not a full
// well-formedness guarantee.
func ValidateDocument(doc *domain.ProjectDocument, schema domain.ProjectSchema) error {
	problems := validate(doc, schema)
	messages := make([]string, 0, len(problems))
	for _, p := range problems {
		messages = append(messages, p.message)
	}
	return validationError(messages)
}

// ValidateRewrite checks doc after RewriteReferences. Structural problems and
// bad values at the changed locations fail validation. Bad values the run
// did not write are returned as warnings, so a pre-existing odd path does
// not block an otherwise valid partial relink.
func ValidateRewrite(
	doc *domain.ProjectDocument,
	schema domain.ProjectSchema,
	changes []domain.PathChange,
) (warnings []string, err error) {
	touched := make(map[location]bool, len(changes))
	for _, c := range changes {
		touched[location{node: c.Node, locator: c.Locator}] = true
	}

	var messages []string
	for _, p := range validate(doc, schema) {
		if p.at != nil && !touched[*p.at] {
			warnings = append(warnings, "pre-existing "+p.message)
			continue
		}
		messages = append(messages, p.message)
	}
	return warnings, validationError(messages)
}

type location struct {
	node    domain.NodeID
	locator domain.Locator
}

// problem is one validation message. at is nil for structural problems.
type problem struct {
	message string
	at      *location
}

func validate(doc *domain.ProjectDocument, schema domain.ProjectSchema) []problem {
	var problems []problem

	if doc == nil || doc.Root() == domain.InvalidNode {
		return append(problems, problem{message: "no root element found"})
	}

	root, _ := doc.Node(doc.Root())
	if !schema.IsRootElement(root.Name) {
		problems = append(problems, problem{
			message: fmt.Sprintf("unexpected root element: %s", root.QualifiedName()),
		})
	}

	doc.Elements(func(id domain.NodeID, n domain.Node) {
		for _, a := range n.Attrs {
			if a.Prefix != "" || !schema.IsPathAttribute(a.Name) {
				continue
			}
			if bad := checkPathValue(a.Value); bad != "" {
				problems = append(problems, problem{
					message: fmt.Sprintf("invalid path format at <%s @%s> (node %d): %s",
						n.QualifiedName(), a.Name, id, bad),
					at: &location{node: id, locator: domain.AttributeLocator(a.Name)},
				})
			}
		}

		if !schema.IsPathElement(n.Name) {
			return
		}
		if text, ok := doc.TextContent(id); ok {
			if bad := checkPathValue(text); bad != "" {
				problems = append(problems, problem{
					message: fmt.Sprintf("invalid path format at <%s> (node %d): %s",
						n.QualifiedName(), id, bad),
					at: &location{node: id, locator: domain.TextLocator()},
				})
			}
		}
	})

	return problems
}

func validationError(messages []string) error {
	if len(messages) > 0 {
		return &domain.ValidationError{Messages: messages}
	}
	return nil
}

// checkPathValue returns a description of the first problem in v, or "".
func checkPathValue(v string) string {
	if strings.ContainsAny(v, "<>") {
		return "contains XML characters"
	}
	if !utf8.ValidString(v) {
		return "contains invalid UTF-8"
	}
	for _, r := range v {
		if !isXMLChar(r) {
			return fmt.Sprintf("contains illegal character %U", r)
		}
	}
	return ""
}

// isXMLChar reports whether r is allowed in an XML 1.0 document.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
