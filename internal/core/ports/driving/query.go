package driving

import (
	"context"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

// BoardQueryService answers the four canonical board queries. Every
// front-end translates its wire request into exactly one of these calls.
//
// All operations resolve the board through the shared snapshot cache, so a
// fetch triggered by one front-end benefits the others for the TTL window.
// Parameter validation happens before any upstream call is made.
type BoardQueryService interface {
	// GetBoardContent returns the board's items, optionally filtered by item
	// type and/or an inclusive region. Connectors are included only when
	// both endpoints are in the selected item set.
	GetBoardContent(ctx context.Context, boardID string, filter domain.ContentFilter) (*domain.QueryResult, error)

	// GetRegion is the region-only special case of GetBoardContent.
	GetRegion(ctx context.Context, boardID string, region domain.Region) (*domain.QueryResult, error)

	// SearchItems returns items whose text contains searchText. Matching is
	// case-insensitive unless opts.CaseSensitive is set; substring
	// containment only.
	SearchItems(ctx context.Context, boardID, searchText string, opts domain.SearchOptions) (*domain.QueryResult, error)

	// ConnectedPath walks the connector graph breadth-first from startItemID,
	// following edges in both directions, bounded by opts.MaxDepth. Fails
	// with domain.ErrItemNotFound if the start item is absent.
	ConnectedPath(ctx context.Context, boardID, startItemID string, opts domain.PathOptions) (*domain.QueryResult, error)
}
