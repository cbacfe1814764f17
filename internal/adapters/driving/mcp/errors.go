// Package mcp provides an MCP (Model Context Protocol) server adapter for prrelink.
// It lets AI assistants relink and inspect project containers.
package mcp

import "errors"

// ErrMissingRelinkService is returned when the relink service is not provided.
var ErrMissingRelinkService = errors.New("mcp: relink service is required")
