// Package domain defines the core entities for prrelink.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ProjectDocument: Arena tree of a parsed project container
//   - PathReference: A located file path inside a ProjectDocument
//   - RelocationEntry: A file that was copied to a new location
//   - RelinkOutcome: The single result record of a relinking run
//   - ProjectSchema: The closed set of path-bearing locations
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
