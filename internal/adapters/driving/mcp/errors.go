// Package mcp provides an MCP (Model Context Protocol) server adapter for
// MiroView. It enables AI assistants like Claude to read Miro boards through
// the board query engine.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: board query service is required")
