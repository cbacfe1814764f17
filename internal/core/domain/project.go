package domain

// NodeID is a handle to a node inside a ProjectDocument.
// Handles stay valid for the lifetime of the document; nodes are never moved.
type NodeID int

// InvalidNode is returned when no node exists for a lookup.
const InvalidNode NodeID = -1

// NodeKind identifies what a document node holds.
type NodeKind int

// Node kinds.
const (
	NodeElement NodeKind = iota
	NodeText
	NodeComment
	NodeProcInst
	NodeDirective
)

// String returns the string representation.
func (k NodeKind) String() string {
	switch k {
	case NodeElement:
		return "element"
	case NodeText:
		return "text"
	case NodeComment:
		return "comment"
	case NodeProcInst:
		return "procinst"
	case NodeDirective:
		return "directive"
	default:
		return "unknown"
	}
}

// Attr is an element attribute. The namespace prefix is kept verbatim.
type Attr struct {
	Prefix string
	Name   string
	Value  string
}

// QualifiedName returns the attribute name including its prefix.
func (a Attr) QualifiedName() string {
	if a.Prefix == "" {
		return a.Name
	}
	return a.Prefix + ":" + a.Name
}

// Node is a single entry in the document arena.
type Node struct {
	// Kind is the node type.
	Kind NodeKind

	// Prefix is the namespace prefix of an element.
	Prefix string

	// Name is the local name of an element or the target of a processing instruction.
	Name string

	// Attrs holds element attributes in source order.
	Attrs []Attr

	// Data holds text, comment, processing instruction or directive content.
	Data string

	// Parent is InvalidNode for top-level nodes.
	Parent NodeID

	// Children holds child handles in document order.
	Children []NodeID
}

// QualifiedName returns the element name including its prefix.
func (n Node) QualifiedName() string {
	if n.Prefix == "" {
		return n.Name
	}
	return n.Prefix + ":" + n.Name
}

// ProjectDocument is the in-memory tree of a project container.
// Nodes live in a flat arena and reference each other by NodeID.
// A document has at most one top-level element (its root).
type ProjectDocument struct {
	nodes []Node
	top   []NodeID
	root  NodeID
}

// NewProjectDocument creates an empty document.
func NewProjectDocument() *ProjectDocument {
	return &ProjectDocument{root: InvalidNode}
}

// AddNode appends n as the last child of parent, or as a top-level node when
// parent is InvalidNode. The first top-level element becomes the root; a
// second one is rejected with ErrInvalidInput.
func (d *ProjectDocument) AddNode(parent NodeID, n Node) (NodeID, error) {
	if parent != InvalidNode && !d.isElement(parent) {
		return InvalidNode, ErrInvalidInput
	}

	id := NodeID(len(d.nodes))
	n.Parent = parent
	n.Children = nil

	if parent == InvalidNode {
		if n.Kind == NodeElement {
			if d.root != InvalidNode {
				return InvalidNode, ErrInvalidInput
			}
			d.root = id
		}
		d.top = append(d.top, id)
	} else {
		d.nodes[parent].Children = append(d.nodes[parent].Children, id)
	}

	d.nodes = append(d.nodes, n)
	return id, nil
}

// Root returns the root element handle, or InvalidNode for an empty document.
func (d *ProjectDocument) Root() NodeID {
	return d.root
}

// Len returns the number of nodes in the arena, detached ones included.
func (d *ProjectDocument) Len() int {
	return len(d.nodes)
}

// TopLevel returns the top-level handles in document order.
func (d *ProjectDocument) TopLevel() []NodeID {
	out := make([]NodeID, len(d.top))
	copy(out, d.top)
	return out
}

// Node returns a copy of the node at id.
func (d *ProjectDocument) Node(id NodeID) (Node, bool) {
	if !d.valid(id) {
		return Node{}, false
	}
	n := d.nodes[id]
	n.Attrs = append([]Attr(nil), n.Attrs...)
	n.Children = append([]NodeID(nil), n.Children...)
	return n, true
}

// Attr returns the value of the unprefixed attribute name on element id.
func (d *ProjectDocument) Attr(id NodeID, name string) (string, bool) {
	if !d.isElement(id) {
		return "", false
	}
	for _, a := range d.nodes[id].Attrs {
		if a.Prefix == "" && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr replaces the value of an existing unprefixed attribute.
// It reports whether the attribute was found.
func (d *ProjectDocument) SetAttr(id NodeID, name, value string) bool {
	if !d.isElement(id) {
		return false
	}
	attrs := d.nodes[id].Attrs
	for i := range attrs {
		if attrs[i].Prefix == "" && attrs[i].Name == name {
			attrs[i].Value = value
			return true
		}
	}
	return false
}

// TextContent returns the concatenated text of element id. The second result
// is false when the element has element children, i.e. the text is not the
// element's entire content.
func (d *ProjectDocument) TextContent(id NodeID) (string, bool) {
	if !d.isElement(id) {
		return "", false
	}
	var text string
	for _, c := range d.nodes[id].Children {
		switch d.nodes[c].Kind {
		case NodeText:
			text += d.nodes[c].Data
		case NodeElement:
			return "", false
		}
	}
	return text, true
}

// SetText replaces the character data of element id with a single text node
// placed where the first text child was. Comments, processing instructions
// and directives keep their positions. Replaced nodes stay in the arena but
// are detached.
func (d *ProjectDocument) SetText(id NodeID, text string) bool {
	if !d.isElement(id) {
		return false
	}

	textID := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, Node{Kind: NodeText, Data: text, Parent: id})

	old := d.nodes[id].Children
	children := make([]NodeID, 0, len(old)+1)
	placed := false
	for _, c := range old {
		if d.nodes[c].Kind != NodeText {
			children = append(children, c)
			continue
		}
		d.nodes[c].Parent = InvalidNode
		if !placed {
			children = append(children, textID)
			placed = true
		}
	}
	if !placed {
		children = append(children, textID)
	}
	d.nodes[id].Children = children
	return true
}

// Walk visits every attached node in document order. Returning false from fn
// skips the node's children.
func (d *ProjectDocument) Walk(fn func(id NodeID, n Node) bool) {
	for _, id := range d.top {
		d.walk(id, fn)
	}
}

func (d *ProjectDocument) walk(id NodeID, fn func(NodeID, Node) bool) {
	if !fn(id, d.nodes[id]) {
		return
	}
	for _, c := range d.nodes[id].Children {
		d.walk(c, fn)
	}
}

// Elements visits every attached element in document order.
func (d *ProjectDocument) Elements(fn func(id NodeID, n Node)) {
	d.Walk(func(id NodeID, n Node) bool {
		if n.Kind == NodeElement {
			fn(id, n)
		}
		return true
	})
}

func (d *ProjectDocument) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(d.nodes)
}

func (d *ProjectDocument) isElement(id NodeID) bool {
	return d.valid(id) && d.nodes[id].Kind == NodeElement
}
