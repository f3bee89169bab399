package mcp

import (
	"context"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.BoardQueryService.
// It records the arguments of the last call so handler mapping can be
// asserted.
type mockQueryService struct {
	result *domain.QueryResult
	err    error

	lastBoardID string
	lastFilter  domain.ContentFilter
	lastSearch  string
	lastOpts    domain.SearchOptions
	lastStartID string
	lastPath    domain.PathOptions
}

func (m *mockQueryService) GetBoardContent(
	_ context.Context, boardID string, filter domain.ContentFilter,
) (*domain.QueryResult, error) {
	m.lastBoardID = boardID
	m.lastFilter = filter
	return m.result, m.err
}

func (m *mockQueryService) GetRegion(
	_ context.Context, boardID string, region domain.Region,
) (*domain.QueryResult, error) {
	m.lastBoardID = boardID
	m.lastFilter = domain.ContentFilter{Region: &region}
	return m.result, m.err
}

func (m *mockQueryService) SearchItems(
	_ context.Context, boardID, searchText string, opts domain.SearchOptions,
) (*domain.QueryResult, error) {
	m.lastBoardID = boardID
	m.lastSearch = searchText
	m.lastOpts = opts
	return m.result, m.err
}

func (m *mockQueryService) ConnectedPath(
	_ context.Context, boardID, startItemID string, opts domain.PathOptions,
) (*domain.QueryResult, error) {
	m.lastBoardID = boardID
	m.lastStartID = startItemID
	m.lastPath = opts
	return m.result, m.err
}
