package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

func TestGetBoardContent(t *testing.T) {
	t.Run("unfiltered listing returns everything", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		result, err := svc.GetBoardContent(context.Background(), "board-1", domain.ContentFilter{})

		require.NoError(t, err)
		assert.Equal(t, "board-1", result.Metadata.BoardID)
		assert.Equal(t, 4, result.Metadata.ItemCount)
		assert.Equal(t, 2, result.Metadata.ConnectorCount)
		assert.False(t, result.Metadata.Truncated)
		assert.Len(t, result.Items, 4)
		assert.Len(t, result.Graph, 4)
	})

	t.Run("unfiltered listing keeps dangling connectors", func(t *testing.T) {
		snapshot := chainSnapshot()
		snapshot.Connectors = append(snapshot.Connectors,
			domain.Connector{ID: "dangling", From: "a", To: "deleted"})
		provider := &fakeSnapshotProvider{snapshot: snapshot}
		svc := NewBoardQueryService(provider)

		result, err := svc.GetBoardContent(context.Background(), "board-1", domain.ContentFilter{})

		require.NoError(t, err)
		assert.Len(t, result.Connectors, 3)
		// The dangling endpoint still gets no adjacency entry.
		assert.NotContains(t, result.Graph, "deleted")
		assert.Len(t, result.Graph["a"].Outgoing, 1)
	})

	t.Run("type filter drops non-matching connectors", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		filter := domain.ContentFilter{Types: []domain.ItemType{domain.ItemTypeStickyNote, domain.ItemTypeShape}}
		result, err := svc.GetBoardContent(context.Background(), "board-1", filter)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Metadata.ItemCount)
		// Only a -> b survives; b -> c lost its endpoint.
		require.Len(t, result.Connectors, 1)
		assert.Equal(t, "c1", result.Connectors[0].ID)
	})

	t.Run("unknown filter type matches no items, not the other bucket", func(t *testing.T) {
		snapshot := chainSnapshot()
		snapshot.Items = append(snapshot.Items,
			domain.Item{ID: "weird", Type: domain.ItemTypeOther, Text: "embedded thing"})
		provider := &fakeSnapshotProvider{snapshot: snapshot}
		svc := NewBoardQueryService(provider)

		filter := domain.ContentFilter{Types: []domain.ItemType{"bogus_type"}}
		result, err := svc.GetBoardContent(context.Background(), "board-1", filter)

		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.Equal(t, 0, result.Metadata.ItemCount)
	})

	t.Run("region filter is inclusive on boundaries", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		// Right bound exactly on item b's x.
		filter := domain.ContentFilter{Region: &domain.Region{Left: 0, Right: 100, Top: -10, Bottom: 10}}
		result, err := svc.GetBoardContent(context.Background(), "board-1", filter)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Metadata.ItemCount)
		require.NotNil(t, result.Metadata.Bounds)
		assert.Equal(t, 100.0, result.Metadata.Bounds.Right)
	})

	t.Run("invalid region fails before any fetch", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		filter := domain.ContentFilter{Region: &domain.Region{Left: 10, Right: -10}}
		_, err := svc.GetBoardContent(context.Background(), "board-1", filter)

		require.ErrorIs(t, err, domain.ErrInvalidParameters)
		assert.Zero(t, provider.calls)
	})

	t.Run("empty board id fails before any fetch", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		_, err := svc.GetBoardContent(context.Background(), "", domain.ContentFilter{})

		require.ErrorIs(t, err, domain.ErrInvalidParameters)
		assert.Zero(t, provider.calls)
	})

	t.Run("truncation is reported and applies the endpoint rule", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)
		svc.SetMaxItems(2)

		result, err := svc.GetBoardContent(context.Background(), "board-1", domain.ContentFilter{})

		require.NoError(t, err)
		assert.True(t, result.Metadata.Truncated)
		assert.Len(t, result.Items, 2)
		// Only a and b survive the cap, so only a -> b qualifies.
		require.Len(t, result.Connectors, 1)
		assert.Equal(t, "c1", result.Connectors[0].ID)
	})

	t.Run("identical queries on one snapshot give identical results", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		first, err := svc.GetBoardContent(context.Background(), "board-1", domain.ContentFilter{})
		require.NoError(t, err)
		second, err := svc.GetBoardContent(context.Background(), "board-1", domain.ContentFilter{})
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("fetch errors pass through", func(t *testing.T) {
		provider := &fakeSnapshotProvider{err: domain.ErrBoardNotFound}
		svc := NewBoardQueryService(provider)

		_, err := svc.GetBoardContent(context.Background(), "board-1", domain.ContentFilter{})

		require.ErrorIs(t, err, domain.ErrBoardNotFound)
	})
}

func TestGetRegion(t *testing.T) {
	provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
	svc := NewBoardQueryService(provider)

	region := domain.Region{Left: -10, Right: 10, Top: -10, Bottom: 10}
	result, err := svc.GetRegion(context.Background(), "board-1", region)

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "a", result.Items[0].ID)
	require.NotNil(t, result.Metadata.Bounds)
	assert.Equal(t, region, *result.Metadata.Bounds)
}

func TestSearchItems(t *testing.T) {
	t.Run("case insensitive by default", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		result, err := svc.SearchItems(context.Background(), "board-1", "PLAN", domain.SearchOptions{})

		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "a", result.Items[0].ID)
		require.NotNil(t, result.Search)
		assert.Equal(t, "PLAN", result.Search.Query)
		assert.Equal(t, 1, result.Search.ResultCount)
		assert.False(t, result.Search.CaseSensitive)
	})

	t.Run("case sensitive matching", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		result, err := svc.SearchItems(context.Background(), "board-1", "PLAN",
			domain.SearchOptions{CaseSensitive: true})

		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.Equal(t, 0, result.Search.ResultCount)
	})

	t.Run("substring matches inside words", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		result, err := svc.SearchItems(context.Background(), "board-1", "it", domain.SearchOptions{})

		require.NoError(t, err)
		// "Build it" and "Ship it".
		assert.Len(t, result.Items, 2)
	})

	t.Run("matched items include their mutual connectors", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		result, err := svc.SearchItems(context.Background(), "board-1", "it", domain.SearchOptions{})

		require.NoError(t, err)
		require.Len(t, result.Connectors, 1)
		assert.Equal(t, "c2", result.Connectors[0].ID)
	})

	t.Run("blank search text is rejected", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		_, err := svc.SearchItems(context.Background(), "board-1", "   ", domain.SearchOptions{})

		require.ErrorIs(t, err, domain.ErrInvalidParameters)
		assert.Zero(t, provider.calls)
	})
}

func TestConnectedPath(t *testing.T) {
	t.Run("depth one reaches direct neighbours only", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		result, err := svc.ConnectedPath(context.Background(), "board-1", "a",
			domain.PathOptions{MaxDepth: 1})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Metadata.ItemCount) // a and b
		require.NotNil(t, result.Traversal)
		assert.Equal(t, 1, result.Traversal.MaxDepthReached)
		require.Len(t, result.Traversal.Paths, 1)
		assert.Equal(t, domain.PathStep{From: "a", To: "b", Label: "then", Depth: 1}, result.Traversal.Paths[0])
	})

	t.Run("depth two walks the whole chain", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		result, err := svc.ConnectedPath(context.Background(), "board-1", "a",
			domain.PathOptions{MaxDepth: 2})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Metadata.ItemCount)
		assert.Equal(t, 2, result.Metadata.ConnectorCount)
		assert.Equal(t, 2, result.Traversal.MaxDepthReached)
		// The unconnected item is never reached.
		for _, item := range result.Items {
			assert.NotEqual(t, "lonely", item.ID)
		}
	})

	t.Run("traversal is undirected but steps keep direction", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		// Start at the end of the chain and walk backwards.
		result, err := svc.ConnectedPath(context.Background(), "board-1", "c",
			domain.PathOptions{MaxDepth: 2})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Metadata.ItemCount)
		// The first step reaches b via c2, recorded in original direction b -> c.
		require.NotEmpty(t, result.Traversal.Paths)
		assert.Equal(t, domain.PathStep{From: "b", To: "c", Label: "finally", Depth: 1}, result.Traversal.Paths[0])
	})

	t.Run("cycles terminate", func(t *testing.T) {
		snapshot := chainSnapshot()
		snapshot.Connectors = append(snapshot.Connectors,
			domain.Connector{ID: "c3", From: "c", To: "a", Label: "loop"})
		provider := &fakeSnapshotProvider{snapshot: snapshot}
		svc := NewBoardQueryService(provider)

		result, err := svc.ConnectedPath(context.Background(), "board-1", "a",
			domain.PathOptions{MaxDepth: 10})

		require.NoError(t, err)
		// Each of a, b, c exactly once despite the cycle.
		assert.Equal(t, 3, result.Metadata.ItemCount)
		assert.Equal(t, 3, result.Metadata.ConnectorCount)
		assert.Len(t, result.Traversal.Paths, 2)
	})

	t.Run("default depth applies when unset", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		result, err := svc.ConnectedPath(context.Background(), "board-1", "a", domain.PathOptions{})

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultMaxDepth, result.Traversal.MaxDepth)
	})

	t.Run("excessive depth is clamped", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		result, err := svc.ConnectedPath(context.Background(), "board-1", "a",
			domain.PathOptions{MaxDepth: 9999})

		require.NoError(t, err)
		assert.Equal(t, domain.MaxDepthCeiling, result.Traversal.MaxDepth)
	})

	t.Run("negative depth is rejected", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		_, err := svc.ConnectedPath(context.Background(), "board-1", "a",
			domain.PathOptions{MaxDepth: -1})

		require.ErrorIs(t, err, domain.ErrInvalidParameters)
		assert.Zero(t, provider.calls)
	})

	t.Run("unknown start item", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		_, err := svc.ConnectedPath(context.Background(), "board-1", "nope", domain.PathOptions{})

		require.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("isolated start item yields just itself", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		result, err := svc.ConnectedPath(context.Background(), "board-1", "lonely", domain.PathOptions{})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Metadata.ItemCount)
		assert.Empty(t, result.Traversal.Paths)
		assert.Equal(t, 0, result.Traversal.MaxDepthReached)
	})

	t.Run("graph is restricted to the visited set", func(t *testing.T) {
		provider := &fakeSnapshotProvider{snapshot: chainSnapshot()}
		svc := NewBoardQueryService(provider)

		result, err := svc.ConnectedPath(context.Background(), "board-1", "a",
			domain.PathOptions{MaxDepth: 1})

		require.NoError(t, err)
		require.Len(t, result.Graph, 2)
		// b's edge onward to c is outside the visited set and filtered out.
		assert.Empty(t, result.Graph["b"].Outgoing)
		require.Len(t, result.Graph["b"].Incoming, 1)
		assert.Equal(t, "a", result.Graph["b"].Incoming[0].OtherID)
	})
}
