package cli

import (
	"context"
	"time"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

// mockQueryService records the last call and returns canned results.
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

func (m *mockQueryService) GetBoardContent(_ context.Context, boardID string, filter domain.ContentFilter) (*domain.QueryResult, error) {
	m.lastBoardID = boardID
	m.lastFilter = filter
	return m.result, m.err
}

func (m *mockQueryService) GetRegion(_ context.Context, boardID string, region domain.Region) (*domain.QueryResult, error) {
	m.lastBoardID = boardID
	m.lastFilter = domain.ContentFilter{Region: &region}
	return m.result, m.err
}

func (m *mockQueryService) SearchItems(_ context.Context, boardID, searchText string, opts domain.SearchOptions) (*domain.QueryResult, error) {
	m.lastBoardID = boardID
	m.lastSearch = searchText
	m.lastOpts = opts
	return m.result, m.err
}

func (m *mockQueryService) ConnectedPath(_ context.Context, boardID, startItemID string, opts domain.PathOptions) (*domain.QueryResult, error) {
	m.lastBoardID = boardID
	m.lastStartID = startItemID
	m.lastPath = opts
	return m.result, m.err
}

func sampleResult(boardID string) *domain.QueryResult {
	return &domain.QueryResult{
		Metadata: domain.ResultMetadata{
			BoardID:        boardID,
			ItemCount:      2,
			ConnectorCount: 1,
			Timestamp:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		Items: []domain.Item{
			{ID: "item-1", Type: domain.ItemTypeStickyNote, Text: "plan", Position: domain.Position{X: 10, Y: 20}},
			{ID: "item-2", Type: domain.ItemTypeShape, Text: "build", Position: domain.Position{X: 110, Y: 20}},
		},
		Connectors: []domain.Connector{
			{ID: "conn-1", From: "item-1", To: "item-2", Label: "then"},
		},
	}
}
