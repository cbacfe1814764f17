package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driving"
)

// RelocationInput is one entry of the relocation table.
type RelocationInput struct {
	OriginalPath    string `json:"original_path" jsonschema:"path of the media file before it was copied"`
	DestinationPath string `json:"destination_path" jsonschema:"path of the copied media file"`
}

// RelinkInput is the input schema for the relink_project tool.
type RelinkInput struct {
	Source      string            `json:"source" jsonschema:"project file to read"`
	Destination string            `json:"destination,omitempty" jsonschema:"where to write the relinked project (default: overwrite source)"`
	Relocations []RelocationInput `json:"relocations" jsonschema:"relocation table produced by the copy step"`
	DryRun      bool              `json:"dry_run,omitempty" jsonschema:"run every stage except writing"`
}

// ChangeOutput describes one rewritten reference.
type ChangeOutput struct {
	Element string `json:"element"`
	Locator string `json:"locator"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// RelinkOutput is the output schema for the relink_project tool.
type RelinkOutput struct {
	Success        bool           `json:"success"`
	Stage          string         `json:"stage"`
	ReferenceCount int            `json:"reference_count"`
	UpdatedCount   int            `json:"updated_count"`
	UnmatchedCount int            `json:"unmatched_count"`
	MalformedCount int            `json:"malformed_count"`
	Errors         []string       `json:"errors,omitempty"`
	Notes          []string       `json:"notes,omitempty"`
	Changes        []ChangeOutput `json:"changes,omitempty"`
}

// InspectInput is the input schema for the inspect_project tool.
type InspectInput struct {
	Path        string            `json:"path" jsonschema:"project file to inspect"`
	Relocations []RelocationInput `json:"relocations,omitempty" jsonschema:"optional relocation table to preview destinations"`
}

// ReferenceOutput describes one path reference.
type ReferenceOutput struct {
	Name        string `json:"name"`
	Locator     string `json:"locator"`
	Path        string `json:"path"`
	Kind        string `json:"kind"`
	Malformed   bool   `json:"malformed,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// InspectOutput is the output schema for the inspect_project tool.
type InspectOutput struct {
	Path             string            `json:"path"`
	Compressed       bool              `json:"compressed"`
	RootElement      string            `json:"root_element"`
	References       []ReferenceOutput `json:"references"`
	CountByKind      map[string]int    `json:"count_by_kind"`
	MalformedCount   int               `json:"malformed_count"`
	MatchedCount     int               `json:"matched_count"`
	ValidationErrors []string          `json:"validation_errors,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "relink_project",
		Description: "Rewrite media paths in a project file using a relocation table",
	}, s.handleRelink)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "inspect_project",
		Description: "List the media path references of a project file without modifying it",
	}, s.handleInspect)
}

// handleRelink handles the relink_project tool invocation.
// Pipeline failures are reported in the output, not as tool errors.
func (s *Server) handleRelink(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RelinkInput,
) (*mcp.CallToolResult, RelinkOutput, error) {
	if input.Source == "" {
		return nil, RelinkOutput{}, fmt.Errorf("source: %w", domain.ErrInvalidInput)
	}

	outcome := s.ports.Relink.Relink(ctx, domain.RelinkRequest{
		SourcePath:      input.Source,
		DestinationPath: input.Destination,
		Relocations:     toEntries(input.Relocations),
		DryRun:          input.DryRun,
	})

	output := RelinkOutput{
		Success:        outcome.Success,
		Stage:          outcome.Stage.String(),
		ReferenceCount: outcome.ReferenceCount,
		UpdatedCount:   outcome.UpdatedCount,
		UnmatchedCount: outcome.UnmatchedCount,
		MalformedCount: outcome.MalformedCount,
		Errors:         outcome.Errors,
		Notes:          outcome.Notes,
	}
	for _, c := range outcome.Changes {
		output.Changes = append(output.Changes, ChangeOutput{
			Element: c.Element,
			Locator: c.Locator.String(),
			From:    c.OldPath,
			To:      c.NewPath,
		})
	}

	return nil, output, nil
}

// handleInspect handles the inspect_project tool invocation.
func (s *Server) handleInspect(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InspectInput,
) (*mcp.CallToolResult, InspectOutput, error) {
	report, err := s.ports.Relink.Inspect(ctx, input.Path, toEntries(input.Relocations))
	if err != nil {
		return nil, InspectOutput{}, err
	}

	output := InspectOutput{
		Path:             report.Path,
		Compressed:       report.Compressed,
		RootElement:      report.RootElement,
		References:       make([]ReferenceOutput, len(report.References)),
		CountByKind:      make(map[string]int),
		MalformedCount:   report.MalformedCount,
		MatchedCount:     report.MatchedCount,
		ValidationErrors: report.ValidationErrors,
	}

	for i, ref := range report.References {
		output.References[i] = toReferenceOutput(ref)
	}
	for kind, n := range report.CountByKind() {
		output.CountByKind[string(kind)] = n
	}

	return nil, output, nil
}

func toEntries(in []RelocationInput) []domain.RelocationEntry {
	entries := make([]domain.RelocationEntry, len(in))
	for i, r := range in {
		entries[i] = domain.RelocationEntry{
			OriginalPath:    r.OriginalPath,
			DestinationPath: r.DestinationPath,
		}
	}
	return entries
}

func toReferenceOutput(ref driving.ReferenceDetail) ReferenceOutput {
	return ReferenceOutput{
		Name:        ref.Name,
		Locator:     ref.Locator.String(),
		Path:        ref.DecodedPath,
		Kind:        string(ref.Kind),
		Malformed:   ref.Malformed,
		Destination: ref.Destination,
	}
}
