package driven

import (
	"context"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

// BoardFetcher fetches a complete board from the upstream service and
// normalises it into a snapshot. Implementations follow upstream pagination
// cursors until exhausted and handle rate-limit backoff internally; repeated
// exhaustion surfaces as domain.ErrRateLimited rather than retrying forever.
//
// Fetchers are stateless between calls apart from credential storage.
type BoardFetcher interface {
	// FetchSnapshot fetches all items and connectors for the board.
	// Fails with domain.ErrBoardNotFound, domain.ErrRateLimited or
	// domain.ErrUpstreamUnavailable.
	FetchSnapshot(ctx context.Context, boardID string) (*domain.BoardSnapshot, error)
}

// CacheStats reports snapshot-cache counters for health reporting and tests.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Fetches int64
	Entries int
}

// SnapshotProvider serves board snapshots, caching them per board id for a
// short TTL. Concurrent callers for the same uncached board id share a single
// upstream fetch. Fetch failures are never cached; the next access retries.
type SnapshotProvider interface {
	// GetOrFetch returns the cached snapshot for the board if present and
	// fresh, otherwise fetches, stores and returns a new one.
	GetOrFetch(ctx context.Context, boardID string) (*domain.BoardSnapshot, error)

	// GetOrFetchIndexed is GetOrFetch plus the snapshot's graph index. The
	// index is built at most once per cached snapshot and rebuilt whenever a
	// refetch replaces the snapshot; it is never patched incrementally.
	GetOrFetchIndexed(ctx context.Context, boardID string) (*domain.BoardSnapshot, *domain.GraphIndex, error)

	// Invalidate drops the cached snapshot for the board, if any.
	Invalidate(boardID string)

	// Stats returns cache counters.
	Stats() CacheStats
}
