package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

// BoundsInput is the bounding-box argument shared by region queries.
type BoundsInput struct {
	Left   float64 `json:"left" jsonschema:"left edge of the region"`
	Right  float64 `json:"right" jsonschema:"right edge of the region"`
	Top    float64 `json:"top" jsonschema:"top edge of the region"`
	Bottom float64 `json:"bottom" jsonschema:"bottom edge of the region"`
}

// RegionInput is the input schema for the get_board_region tool.
type RegionInput struct {
	BoardID      string       `json:"boardId" jsonschema:"the board ID from the board URL"`
	Bounds       *BoundsInput `json:"bounds,omitempty" jsonschema:"optional inclusive bounding box; omit for the full board"`
	IncludeTypes []string     `json:"includeTypes,omitempty" jsonschema:"optional item type filter (sticky_note, shape, text, card, frame, other)"`
}

// SearchInput is the input schema for the search_board_items tool.
type SearchInput struct {
	BoardID       string `json:"boardId" jsonschema:"the board ID from the board URL"`
	SearchText    string `json:"searchText" jsonschema:"text to search item contents for (substring match)"`
	CaseSensitive bool   `json:"caseSensitive,omitempty" jsonschema:"match case exactly (default false)"`
}

// PathInput is the input schema for the get_connected_path tool.
type PathInput struct {
	BoardID     string `json:"boardId" jsonschema:"the board ID from the board URL"`
	StartItemID string `json:"startItemId" jsonschema:"the item ID to start the traversal from"`
	MaxDepth    int    `json:"maxDepth,omitempty" jsonschema:"maximum traversal depth in hops (default 5)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_board_region",
		Description: "Get all items and connections from a board region",
	}, s.handleRegion)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_board_items",
		Description: "Search board items by text content",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_connected_path",
		Description: "Get items connected to a starting item",
	}, s.handleConnectedPath)
}

// handleRegion handles the get_board_region tool invocation.
func (s *Server) handleRegion(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RegionInput,
) (*mcp.CallToolResult, domain.QueryResult, error) {
	filter := domain.ContentFilter{}
	if input.Bounds != nil {
		filter.Region = &domain.Region{
			Left:   input.Bounds.Left,
			Right:  input.Bounds.Right,
			Top:    input.Bounds.Top,
			Bottom: input.Bounds.Bottom,
		}
	}
	// Filter types match verbatim; unknown type names match nothing because
	// ingest folds unknown upstream types into "other".
	for _, t := range input.IncludeTypes {
		filter.Types = append(filter.Types, domain.ItemType(t))
	}

	result, err := s.ports.Query.GetBoardContent(ctx, input.BoardID, filter)
	if err != nil {
		return nil, domain.QueryResult{}, err
	}
	return nil, *result, nil
}

// handleSearch handles the search_board_items tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, domain.QueryResult, error) {
	opts := domain.SearchOptions{CaseSensitive: input.CaseSensitive}

	result, err := s.ports.Query.SearchItems(ctx, input.BoardID, input.SearchText, opts)
	if err != nil {
		return nil, domain.QueryResult{}, err
	}
	return nil, *result, nil
}

// handleConnectedPath handles the get_connected_path tool invocation.
func (s *Server) handleConnectedPath(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PathInput,
) (*mcp.CallToolResult, domain.QueryResult, error) {
	opts := domain.PathOptions{MaxDepth: input.MaxDepth}

	result, err := s.ports.Query.ConnectedPath(ctx, input.BoardID, input.StartItemID, opts)
	if err != nil {
		return nil, domain.QueryResult{}, err
	}
	return nil, *result, nil
}
