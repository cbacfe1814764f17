package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for prrelink resources.
	uriScheme = "prrelink://"

	// historyLimit caps the runs listed by the history resource.
	historyLimit = 50
)

// runInfo is the JSON shape of a run in history resources.
type runInfo struct {
	ID             string    `json:"id"`
	Source         string    `json:"source"`
	Destination    string    `json:"destination"`
	DryRun         bool      `json:"dry_run"`
	StartedAt      time.Time `json:"started_at"`
	DurationMS     int64     `json:"duration_ms"`
	Result         string    `json:"result"`
	Stage          string    `json:"stage"`
	ReferenceCount int       `json:"reference_count"`
	UpdatedCount   int       `json:"updated_count"`
	UnmatchedCount int       `json:"unmatched_count"`
	Errors         []string  `json:"errors,omitempty"`
	Notes          []string  `json:"notes,omitempty"`
}

func newRunInfo(run domain.RelinkRun) runInfo {
	return runInfo{
		ID:             run.ID,
		Source:         run.SourcePath,
		Destination:    run.DestinationPath,
		DryRun:         run.DryRun,
		StartedAt:      run.StartedAt,
		DurationMS:     run.Duration().Milliseconds(),
		Result:         run.Result(),
		Stage:          run.Outcome.Stage.String(),
		ReferenceCount: run.Outcome.ReferenceCount,
		UpdatedCount:   run.Outcome.UpdatedCount,
		UnmatchedCount: run.Outcome.UnmatchedCount,
		Errors:         run.Outcome.Errors,
		Notes:          run.Outcome.Notes,
	}
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Most recent relinking runs, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{runId}",
		Name:        "history-run",
		Description: "A single relinking run",
		MIMEType:    "application/json",
	}, s.handleRunResource)
}

// handleHistoryResource returns recent runs.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	runs, err := s.ports.History.List(ctx, historyLimit)
	if err != nil {
		if errors.Is(err, domain.ErrNotImplemented) {
			return jsonResult(req.Params.URI, "[]"), nil
		}
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	infos := make([]runInfo, len(runs))
	for i := range runs {
		infos[i] = newRunInfo(runs[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling runs: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleRunResource returns a single run by ID.
func (s *Server) handleRunResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// prrelink://history/{runId}
	runID := extractRunID(req.Params.URI)
	if runID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	run, err := s.ports.History.Get(ctx, runID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting run: %w", err)
	}

	data, err := json.MarshalIndent(newRunInfo(*run), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling run: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractRunID extracts the run ID from a URI like prrelink://history/{runId}.
func extractRunID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
