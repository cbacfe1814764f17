// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The relinking pipeline is split into plain functions (ExtractReferences,
// RewriteReferences, ValidateDocument) that RelinkService sequences as a
// state machine. Services are pure Go with no CGO.
package services
