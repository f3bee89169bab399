package services

import (
	"context"
	"time"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
	"github.com/openboard-labs/miroview-cli/internal/core/ports/driven"
)

// fakeSnapshotProvider serves a fixed snapshot and counts accesses.
type fakeSnapshotProvider struct {
	snapshot *domain.BoardSnapshot
	err      error
	calls    int
}

func (f *fakeSnapshotProvider) GetOrFetch(_ context.Context, _ string) (*domain.BoardSnapshot, error) {
	f.calls++
	return f.snapshot, f.err
}

func (f *fakeSnapshotProvider) GetOrFetchIndexed(ctx context.Context, boardID string) (*domain.BoardSnapshot, *domain.GraphIndex, error) {
	snapshot, err := f.GetOrFetch(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}
	return snapshot, domain.BuildGraphIndex(snapshot), nil
}

func (f *fakeSnapshotProvider) Invalidate(_ string) {}

func (f *fakeSnapshotProvider) Stats() driven.CacheStats { return driven.CacheStats{} }

// chainSnapshot builds a board with a linear chain a -> b -> c and one item
// off on its own.
func chainSnapshot() *domain.BoardSnapshot {
	return &domain.BoardSnapshot{
		BoardID: "board-1",
		Items: []domain.Item{
			{ID: "a", Type: domain.ItemTypeStickyNote, Text: "Plan the launch", Position: domain.Position{X: 0, Y: 0}},
			{ID: "b", Type: domain.ItemTypeShape, Text: "Build it", Position: domain.Position{X: 100, Y: 0}},
			{ID: "c", Type: domain.ItemTypeCard, Text: "Ship it", Position: domain.Position{X: 200, Y: 0}},
			{ID: "lonely", Type: domain.ItemTypeText, Text: "unrelated note", Position: domain.Position{X: 900, Y: 900}},
		},
		Connectors: []domain.Connector{
			{ID: "c1", From: "a", To: "b", Label: "then"},
			{ID: "c2", From: "b", To: "c", Label: "finally"},
		},
		FetchedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}
