package container

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

// parseDocument builds the arena from XML text. Namespace prefixes are kept
// verbatim so the document serialises back with the same names.
func parseDocument(text []byte) (*domain.ProjectDocument, error) {
	dec := xml.NewDecoder(bytes.NewReader(text))
	dec.Strict = true

	doc := domain.NewProjectDocument()
	var stack []domain.NodeID

	parent := func() domain.NodeID {
		if len(stack) == 0 {
			return domain.InvalidNode
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError("", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := domain.Node{
				Kind:   domain.NodeElement,
				Prefix: t.Name.Space,
				Name:   t.Name.Local,
				Attrs:  make([]domain.Attr, 0, len(t.Attr)),
			}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, domain.Attr{
					Prefix: a.Name.Space,
					Name:   a.Name.Local,
					Value:  a.Value,
				})
			}
			id, err := doc.AddNode(parent(), node)
			if err != nil {
				return nil, parseError(fmt.Sprintf("second root element <%s>", qualified(t.Name)), nil)
			}
			stack = append(stack, id)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, parseError(fmt.Sprintf("unexpected </%s>", qualified(t.Name)), nil)
			}
			open, _ := doc.Node(parent())
			if open.Prefix != t.Name.Space || open.Name != t.Name.Local {
				return nil, parseError(fmt.Sprintf(
					"element <%s> closed by </%s> at line %d",
					open.QualifiedName(), qualified(t.Name), line(dec, text)), nil)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, parseError("text outside the root element", nil)
				}
				continue
			}
			if _, err := doc.AddNode(parent(), domain.Node{Kind: domain.NodeText, Data: string(t)}); err != nil {
				return nil, parseError("", err)
			}

		case xml.Comment:
			if _, err := doc.AddNode(parent(), domain.Node{Kind: domain.NodeComment, Data: string(t)}); err != nil {
				return nil, parseError("", err)
			}

		case xml.ProcInst:
			node := domain.Node{Kind: domain.NodeProcInst, Name: t.Target, Data: string(t.Inst)}
			if _, err := doc.AddNode(parent(), node); err != nil {
				return nil, parseError("", err)
			}

		case xml.Directive:
			if _, err := doc.AddNode(parent(), domain.Node{Kind: domain.NodeDirective, Data: string(t)}); err != nil {
				return nil, parseError("", err)
			}
		}
	}

	if len(stack) > 0 {
		open, _ := doc.Node(parent())
		return nil, parseError(fmt.Sprintf("unclosed element <%s>", open.QualifiedName()), nil)
	}
	if doc.Root() == domain.InvalidNode {
		return nil, parseError("no root element", nil)
	}

	return doc, nil
}

// serializeDocument writes the arena back as XML text.
func serializeDocument(doc *domain.ProjectDocument) ([]byte, error) {
	if doc == nil || doc.Root() == domain.InvalidNode {
		return nil, &domain.FormatError{Kind: domain.FormatSerialize, Detail: "document has no root element"}
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	written := false
	for _, id := range doc.TopLevel() {
		n, _ := doc.Node(id)
		if n.Kind == domain.NodeText {
			continue
		}
		if written {
			if err := enc.EncodeToken(xml.CharData("\n")); err != nil {
				return nil, serializeError(err)
			}
		}
		if err := encodeNode(enc, doc, id); err != nil {
			return nil, serializeError(err)
		}
		written = true
	}

	if err := enc.Flush(); err != nil {
		return nil, serializeError(err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encodeNode(enc *xml.Encoder, doc *domain.ProjectDocument, id domain.NodeID) error {
	n, _ := doc.Node(id)

	switch n.Kind {
	case domain.NodeText:
		return enc.EncodeToken(xml.CharData(n.Data))
	case domain.NodeComment:
		return enc.EncodeToken(xml.Comment(n.Data))
	case domain.NodeProcInst:
		return enc.EncodeToken(xml.ProcInst{Target: n.Name, Inst: []byte(n.Data)})
	case domain.NodeDirective:
		return enc.EncodeToken(xml.Directive(n.Data))
	}

	// Prefixes are folded into the local name so the encoder writes them
	// verbatim instead of inventing namespace declarations.
	start := xml.StartElement{Name: xml.Name{Local: n.QualifiedName()}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: a.QualifiedName()},
			Value: a.Value,
		})
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := encodeNode(enc, doc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func parseError(detail string, err error) error {
	return &domain.FormatError{Kind: domain.FormatParseFailed, Detail: detail, Err: err}
}

func serializeError(err error) error {
	return &domain.FormatError{Kind: domain.FormatSerialize, Err: err}
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// line returns the 1-based line of the decoder's current offset.
func line(dec *xml.Decoder, text []byte) int {
	off := int(dec.InputOffset())
	if off > len(text) {
		off = len(text)
	}
	return bytes.Count(text[:off], []byte{'\n'}) + 1
}
