package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
	"github.com/openboard-labs/miroview-cli/internal/core/ports/driven"
	"github.com/openboard-labs/miroview-cli/internal/core/ports/driving"
	"github.com/openboard-labs/miroview-cli/internal/logger"
)

// Ensure BoardQueryService implements the interface.
var _ driving.BoardQueryService = (*BoardQueryService)(nil)

// BoardQueryService answers the four canonical board queries against the
// shared snapshot cache. It owns all filtering, matching and traversal
// policy; the snapshot provider owns freshness and fetch deduplication.
type BoardQueryService struct {
	snapshots driven.SnapshotProvider
	maxItems  int
}

// NewBoardQueryService creates a new query service.
func NewBoardQueryService(snapshots driven.SnapshotProvider) *BoardQueryService {
	return &BoardQueryService{
		snapshots: snapshots,
		maxItems:  domain.DefaultMaxItems,
	}
}

// SetMaxItems overrides the default item cap applied when a query does not
// set its own. Non-positive values are ignored.
func (s *BoardQueryService) SetMaxItems(n int) {
	if n > 0 {
		s.maxItems = n
	}
}

// GetBoardContent returns the board's items filtered by type set and region.
func (s *BoardQueryService) GetBoardContent(
	ctx context.Context, boardID string, filter domain.ContentFilter,
) (*domain.QueryResult, error) {
	if boardID == "" {
		return nil, fmt.Errorf("board id is required: %w", domain.ErrInvalidParameters)
	}
	if filter.Region != nil {
		if err := filter.Region.Validate(); err != nil {
			return nil, fmt.Errorf("region bounds out of order: %w", err)
		}
	}

	snapshot, err := s.snapshots.GetOrFetch(ctx, boardID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Content query on board %s: %d items in snapshot", boardID, snapshot.ItemCount())

	var selected []domain.Item
	for i := range snapshot.Items {
		if filter.Matches(&snapshot.Items[i]) {
			selected = append(selected, snapshot.Items[i])
		}
	}

	selected, truncated := s.cap(selected, filter.MaxItems)

	// An unfiltered, untruncated full listing is a raw listing: it includes
	// dangling connectors. As soon as any filter narrows the item set, only
	// connectors with both endpoints selected qualify.
	unfiltered := len(filter.Types) == 0 && filter.Region == nil
	var connectors []domain.Connector
	if unfiltered && !truncated {
		connectors = snapshot.Connectors
	} else {
		connectors = connectorsWithin(snapshot, itemIDSet(selected))
	}

	return &domain.QueryResult{
		Metadata: domain.ResultMetadata{
			BoardID:        boardID,
			ItemCount:      len(selected),
			ConnectorCount: len(connectors),
			Timestamp:      snapshot.FetchedAt,
			Truncated:      truncated,
			Bounds:         filter.Region,
		},
		Items:      selected,
		Connectors: connectors,
		Graph:      adjacencyOf(selected, connectors),
	}, nil
}

// GetRegion is the region-only special case of GetBoardContent.
func (s *BoardQueryService) GetRegion(
	ctx context.Context, boardID string, region domain.Region,
) (*domain.QueryResult, error) {
	return s.GetBoardContent(ctx, boardID, domain.ContentFilter{Region: &region})
}

// SearchItems returns items whose text contains searchText.
//
// Matching is plain substring containment over the item text; the
// case-insensitive default lowercases both sides codepoint-wise, with no
// Unicode normalisation.
func (s *BoardQueryService) SearchItems(
	ctx context.Context, boardID, searchText string, opts domain.SearchOptions,
) (*domain.QueryResult, error) {
	if boardID == "" {
		return nil, fmt.Errorf("board id is required: %w", domain.ErrInvalidParameters)
	}
	if strings.TrimSpace(searchText) == "" {
		return nil, fmt.Errorf("search text is required: %w", domain.ErrInvalidParameters)
	}

	snapshot, err := s.snapshots.GetOrFetch(ctx, boardID)
	if err != nil {
		return nil, err
	}

	needle := searchText
	if !opts.CaseSensitive {
		needle = strings.ToLower(needle)
	}

	var matched []domain.Item
	for i := range snapshot.Items {
		text := snapshot.Items[i].Text
		if !opts.CaseSensitive {
			text = strings.ToLower(text)
		}
		if strings.Contains(text, needle) {
			matched = append(matched, snapshot.Items[i])
		}
	}

	logger.Debug("Search %q on board %s: %d of %d items matched",
		searchText, boardID, len(matched), snapshot.ItemCount())

	matched, truncated := s.cap(matched, opts.MaxItems)
	connectors := connectorsWithin(snapshot, itemIDSet(matched))

	return &domain.QueryResult{
		Metadata: domain.ResultMetadata{
			BoardID:        boardID,
			ItemCount:      len(matched),
			ConnectorCount: len(connectors),
			Timestamp:      snapshot.FetchedAt,
			Truncated:      truncated,
		},
		Items:      matched,
		Connectors: connectors,
		Search: &domain.SearchInfo{
			Query:         searchText,
			CaseSensitive: opts.CaseSensitive,
			ResultCount:   len(matched),
		},
	}, nil
}

// ConnectedPath walks the connector graph breadth-first from startItemID.
//
// Reachability is undirected: both outgoing and incoming edges are expanded,
// though each discovered edge keeps its original direction and label. Every
// item is visited at most once no matter how many paths reach it, so cyclic
// boards terminate. Depth counts edge hops from the start item (depth 0).
func (s *BoardQueryService) ConnectedPath(
	ctx context.Context, boardID, startItemID string, opts domain.PathOptions,
) (*domain.QueryResult, error) {
	if boardID == "" {
		return nil, fmt.Errorf("board id is required: %w", domain.ErrInvalidParameters)
	}
	if startItemID == "" {
		return nil, fmt.Errorf("start item id is required: %w", domain.ErrInvalidParameters)
	}
	maxDepth := opts.MaxDepth
	switch {
	case maxDepth == 0:
		maxDepth = domain.DefaultMaxDepth
	case maxDepth < 0:
		return nil, fmt.Errorf("depth must be positive: %w", domain.ErrInvalidParameters)
	case maxDepth > domain.MaxDepthCeiling:
		maxDepth = domain.MaxDepthCeiling // clamp to bound response size
	}

	snapshot, index, err := s.snapshots.GetOrFetchIndexed(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if !index.Contains(startItemID) {
		return nil, fmt.Errorf("start item %q: %w", startItemID, domain.ErrItemNotFound)
	}

	visited, paths, maxReached := traverse(index, startItemID, maxDepth)

	logger.Debug("Traversal from %s on board %s: %d items visited, depth %d reached",
		startItemID, boardID, len(visited), maxReached)

	var items []domain.Item
	for i := range snapshot.Items {
		if _, ok := visited[snapshot.Items[i].ID]; ok {
			items = append(items, snapshot.Items[i])
		}
	}
	connectors := connectorsWithin(snapshot, visited)

	return &domain.QueryResult{
		Metadata: domain.ResultMetadata{
			BoardID:        boardID,
			ItemCount:      len(items),
			ConnectorCount: len(connectors),
			Timestamp:      snapshot.FetchedAt,
		},
		Items:      items,
		Connectors: connectors,
		Graph:      visitedAdjacency(index, visited),
		Traversal: &domain.TraversalInfo{
			StartItem:       startItemID,
			MaxDepth:        maxDepth,
			Paths:           paths,
			MaxDepthReached: maxReached,
		},
	}, nil
}

// traverse runs the visited-set-bounded BFS over the graph index.
func traverse(
	index *domain.GraphIndex, startID string, maxDepth int,
) (map[string]struct{}, []domain.PathStep, int) {
	type frontier struct {
		id    string
		depth int
	}

	visited := map[string]struct{}{startID: {}}
	queue := []frontier{{id: startID, depth: 0}}
	paths := []domain.PathStep{}
	maxReached := 0

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.depth >= maxDepth {
			continue
		}

		adj := index.Neighbours(current.id)
		if adj == nil {
			continue
		}

		for _, edge := range adj.Outgoing {
			if _, seen := visited[edge.OtherID]; seen {
				continue
			}
			depth := current.depth + 1
			visited[edge.OtherID] = struct{}{}
			queue = append(queue, frontier{id: edge.OtherID, depth: depth})
			paths = append(paths, domain.PathStep{
				From:  current.id,
				To:    edge.OtherID,
				Label: edge.Label,
				Depth: depth,
			})
			if depth > maxReached {
				maxReached = depth
			}
		}
		for _, edge := range adj.Incoming {
			if _, seen := visited[edge.OtherID]; seen {
				continue
			}
			depth := current.depth + 1
			visited[edge.OtherID] = struct{}{}
			queue = append(queue, frontier{id: edge.OtherID, depth: depth})
			paths = append(paths, domain.PathStep{
				From:  edge.OtherID, // original direction preserved
				To:    current.id,
				Label: edge.Label,
				Depth: depth,
			})
			if depth > maxReached {
				maxReached = depth
			}
		}
	}

	return visited, paths, maxReached
}

// cap truncates items to the effective limit and reports whether it cut the
// list short. Truncation is always visible to callers via result metadata.
func (s *BoardQueryService) cap(items []domain.Item, limit int) ([]domain.Item, bool) {
	if limit <= 0 {
		limit = s.maxItems
	}
	if len(items) <= limit {
		return items, false
	}
	return items[:limit], true
}

// itemIDSet collects the ids of the given items.
func itemIDSet(items []domain.Item) map[string]struct{} {
	ids := make(map[string]struct{}, len(items))
	for i := range items {
		ids[items[i].ID] = struct{}{}
	}
	return ids
}

// connectorsWithin returns the snapshot's connectors whose endpoints are both
// in the id set, preserving snapshot order. Dangling connectors never
// qualify: a missing endpoint is never in the set.
func connectorsWithin(snapshot *domain.BoardSnapshot, ids map[string]struct{}) []domain.Connector {
	var out []domain.Connector
	for _, conn := range snapshot.Connectors {
		_, fromOK := ids[conn.From]
		_, toOK := ids[conn.To]
		if fromOK && toOK {
			out = append(out, conn)
		}
	}
	return out
}

// adjacencyOf builds the per-item edge view over exactly the given items and
// connectors. Connector endpoints outside the item set (dangling references
// in a raw listing) get no adjacency entry.
func adjacencyOf(items []domain.Item, connectors []domain.Connector) map[string]domain.Adjacency {
	graph := make(map[string]domain.Adjacency, len(items))
	for i := range items {
		graph[items[i].ID] = domain.Adjacency{}
	}
	for _, conn := range connectors {
		_, fromOK := graph[conn.From]
		_, toOK := graph[conn.To]
		if !fromOK || !toOK {
			continue
		}
		from := graph[conn.From]
		from.Outgoing = append(from.Outgoing, domain.Edge{
			ConnectorID: conn.ID, OtherID: conn.To, Label: conn.Label,
		})
		graph[conn.From] = from

		to := graph[conn.To]
		to.Incoming = append(to.Incoming, domain.Edge{
			ConnectorID: conn.ID, OtherID: conn.From, Label: conn.Label,
		})
		graph[conn.To] = to
	}
	return graph
}

// visitedAdjacency restricts the index's adjacency to the visited set.
func visitedAdjacency(index *domain.GraphIndex, visited map[string]struct{}) map[string]domain.Adjacency {
	graph := make(map[string]domain.Adjacency, len(visited))
	for id := range visited {
		adj := index.Neighbours(id)
		if adj == nil {
			continue
		}
		restricted := domain.Adjacency{}
		for _, edge := range adj.Outgoing {
			if _, ok := visited[edge.OtherID]; ok {
				restricted.Outgoing = append(restricted.Outgoing, edge)
			}
		}
		for _, edge := range adj.Incoming {
			if _, ok := visited[edge.OtherID]; ok {
				restricted.Incoming = append(restricted.Incoming, edge)
			}
		}
		graph[id] = restricted
	}
	return graph
}
