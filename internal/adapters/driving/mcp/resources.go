package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

// uriScheme is the custom URI scheme for MiroView resources.
const uriScheme = "miroview://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for full board content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "boards/{boardId}",
		Name:        "board-content",
		Description: "Full content of a board: items, connections and adjacency",
		MIMEType:    "application/json",
	}, s.handleBoardResource)
}

// handleBoardResource returns the full content of a board.
func (s *Server) handleBoardResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract boardId from URI: miroview://boards/{boardId}
	boardID := extractBoardID(req.Params.URI)
	if boardID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result, err := s.ports.Query.GetBoardContent(ctx, boardID, domain.ContentFilter{})
	if err != nil {
		return nil, fmt.Errorf("reading board: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling board: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractBoardID pulls the board id out of a board resource URI.
// Returns empty string if the URI doesn't match the expected shape.
func extractBoardID(uri string) string {
	rest, ok := strings.CutPrefix(uri, uriScheme+"boards/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}
