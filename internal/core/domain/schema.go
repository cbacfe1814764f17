package domain

// ProjectSchema is the closed set of locations known to carry file paths in
// a project document, and the root elements a project document may have.
type ProjectSchema struct {
	// PathAttributes are attribute names whose value is a path.
	PathAttributes []string

	// PathElements are tag names whose entire text content is a path.
	PathElements []string

	// RootElements are the accepted top-level container tags.
	RootElements []string
}

// DefaultProjectSchema returns the locations used by Premiere Pro projects
// and Final Cut XML interchange files.
func DefaultProjectSchema() ProjectSchema {
	return ProjectSchema{
		PathAttributes: []string{"pathurl", "filepath", "relativeurl"},
		PathElements: []string{
			"pathurl",
			"File",
			"MediaPath",
			"PreviewFile",
			"CaptureFile",
			"AudioPreview",
		},
		RootElements: []string{"PremiereData", "xmeml", "Project"},
	}
}

// IsPathAttribute returns true if name is a path-bearing attribute.
func (s ProjectSchema) IsPathAttribute(name string) bool {
	return contains(s.PathAttributes, name)
}

// IsPathElement returns true if name is a path-bearing element.
func (s ProjectSchema) IsPathElement(name string) bool {
	return contains(s.PathElements, name)
}

// IsRootElement returns true if name is an accepted root tag.
func (s ProjectSchema) IsRootElement(name string) bool {
	return contains(s.RootElements, name)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
