// Package cache provides the in-process board snapshot cache. It is the only
// shared mutable state in MiroView: one instance sits between all front-ends
// and the upstream client, so a fetch triggered by one front-end benefits the
// others for the TTL window.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
	"github.com/openboard-labs/miroview-cli/internal/core/ports/driven"
	"github.com/openboard-labs/miroview-cli/internal/logger"
)

// DefaultTTL is the snapshot freshness window. Tens of seconds balances
// freshness against upstream call volume for a burst of related queries
// (a search followed by a trace on the same board).
const DefaultTTL = 30 * time.Second

// Ensure BoardCache implements the interface.
var _ driven.SnapshotProvider = (*BoardCache)(nil)

// entry is one cached snapshot. The graph index is derived lazily, at most
// once per entry.
type entry struct {
	snapshot *domain.BoardSnapshot
	storedAt time.Time

	indexOnce sync.Once
	index     *domain.GraphIndex
}

func (e *entry) graphIndex() *domain.GraphIndex {
	e.indexOnce.Do(func() {
		e.index = domain.BuildGraphIndex(e.snapshot)
	})
	return e.index
}

// BoardCache caches normalised snapshots per board id with a short TTL.
//
// Concurrent callers for the same uncached board share one upstream fetch
// (singleflight). Failed fetches are never stored, so the next access retries
// cleanly. Expiry is checked lazily on access; there is no background
// eviction.
type BoardCache struct {
	mu      sync.RWMutex
	entries map[string]*entry

	fetcher driven.BoardFetcher
	ttl     time.Duration
	flight  singleflight.Group

	hits    int64
	misses  int64
	fetches int64
}

// New creates a board cache over the given fetcher. A non-positive ttl means
// DefaultTTL.
func New(fetcher driven.BoardFetcher, ttl time.Duration) *BoardCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BoardCache{
		entries: make(map[string]*entry),
		fetcher: fetcher,
		ttl:     ttl,
	}
}

// GetOrFetch returns a fresh cached snapshot or fetches a new one.
func (c *BoardCache) GetOrFetch(ctx context.Context, boardID string) (*domain.BoardSnapshot, error) {
	e, err := c.getOrFetchEntry(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return e.snapshot, nil
}

// GetOrFetchIndexed returns a fresh cached snapshot plus its graph index.
func (c *BoardCache) GetOrFetchIndexed(ctx context.Context, boardID string) (*domain.BoardSnapshot, *domain.GraphIndex, error) {
	e, err := c.getOrFetchEntry(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}
	return e.snapshot, e.graphIndex(), nil
}

func (c *BoardCache) getOrFetchEntry(ctx context.Context, boardID string) (*entry, error) {
	if e := c.lookup(boardID); e != nil {
		atomic.AddInt64(&c.hits, 1)
		return e, nil
	}
	atomic.AddInt64(&c.misses, 1)

	ch := c.flight.DoChan(boardID, func() (any, error) {
		// The fetch runs detached from the triggering caller: if that caller
		// disconnects mid-fetch, the result still lands in the cache for
		// other waiters.
		fetchCtx := context.WithoutCancel(ctx)

		atomic.AddInt64(&c.fetches, 1)
		snapshot, err := c.fetcher.FetchSnapshot(fetchCtx, boardID)
		if err != nil {
			logger.Debug("Fetch for board %s failed: %v", boardID, err)
			return nil, err
		}

		e := &entry{snapshot: snapshot, storedAt: time.Now()}
		c.mu.Lock()
		c.entries[boardID] = e
		c.mu.Unlock()
		return e, nil
	})

	select {
	case <-ctx.Done():
		// The shared fetch keeps running; only this caller's delivery is
		// abandoned.
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entry), nil
	}
}

// lookup returns the entry for the board if present and fresh.
func (c *BoardCache) lookup(boardID string) *entry {
	c.mu.RLock()
	e, ok := c.entries[boardID]
	c.mu.RUnlock()

	if !ok {
		return nil
	}
	if time.Since(e.storedAt) > c.ttl {
		return nil // stale; refetched by the caller
	}
	return e
}

// Invalidate drops the cached snapshot for the board, if any.
func (c *BoardCache) Invalidate(boardID string) {
	c.mu.Lock()
	delete(c.entries, boardID)
	c.mu.Unlock()
	c.flight.Forget(boardID)
}

// Stats returns cache counters.
func (c *BoardCache) Stats() driven.CacheStats {
	c.mu.RLock()
	entries := len(c.entries)
	c.mu.RUnlock()

	return driven.CacheStats{
		Hits:    atomic.LoadInt64(&c.hits),
		Misses:  atomic.LoadInt64(&c.misses),
		Fetches: atomic.LoadInt64(&c.fetches),
		Entries: entries,
	}
}
