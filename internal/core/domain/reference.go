package domain

// LocatorKind says where inside an element a path is stored.
type LocatorKind int

// Locator kinds.
const (
	// LocatorAttribute means the path is an attribute value.
	LocatorAttribute LocatorKind = iota

	// LocatorText means the path is the element's entire text content.
	LocatorText
)

// Locator pinpoints a path value on an element.
type Locator struct {
	Kind LocatorKind

	// Attribute is the attribute name when Kind is LocatorAttribute.
	Attribute string
}

// AttributeLocator returns a locator for the named attribute.
func AttributeLocator(name string) Locator {
	return Locator{Kind: LocatorAttribute, Attribute: name}
}

// TextLocator returns a locator for element text content.
func TextLocator() Locator {
	return Locator{Kind: LocatorText}
}

// String returns "@name" for attributes and "text()" for text content.
func (l Locator) String() string {
	if l.Kind == LocatorText {
		return "text()"
	}
	return "@" + l.Attribute
}

// PathReference is one located occurrence of a file path inside a document.
// Node is a handle into the document the reference was extracted from and is
// meaningless for any other document.
type PathReference struct {
	// Node is the element carrying the path.
	Node NodeID

	// Locator says whether the path is an attribute or the element text.
	Locator Locator

	// Element is the tag name of the element.
	Element string

	// Name is the attribute name, or the tag name for text references.
	Name string

	// RawValue is the value exactly as stored in the document.
	RawValue string

	// DecodedPath is the file system path decoded from RawValue.
	// Equals RawValue when Malformed is set.
	DecodedPath string

	// Malformed is set when RawValue could not be decoded.
	Malformed bool
}

// PathChange records a single rewrite applied to a document.
type PathChange struct {
	Node     NodeID
	Locator  Locator
	Element  string
	OldValue string
	NewValue string

	// OldPath and NewPath are the decoded file system paths.
	OldPath string
	NewPath string
}

// RelocationEntry states that a file was copied from OriginalPath to
// DestinationPath. Both are native file system paths.
type RelocationEntry struct {
	OriginalPath    string `json:"original_path" yaml:"original_path" toml:"original_path"`
	DestinationPath string `json:"destination_path" yaml:"destination_path" toml:"destination_path"`
}
