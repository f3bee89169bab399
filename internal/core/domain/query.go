package domain

import "time"

const (
	// DefaultMaxDepth is the traversal depth used when the caller does not
	// specify one.
	DefaultMaxDepth = 5

	// MaxDepthCeiling bounds caller-requested traversal depth so a single
	// query cannot walk an arbitrarily large board.
	MaxDepthCeiling = 25

	// DefaultMaxItems bounds the number of items returned by a single query
	// unless configured otherwise. Truncation is always reported in the
	// result metadata, never silent.
	DefaultMaxItems = 1000
)

// ContentFilter configures a full-board content query.
// The zero value selects everything.
type ContentFilter struct {
	// Types restricts results to the given item types. Empty means all types.
	Types []ItemType

	// Region restricts results to items whose position falls within the
	// inclusive bounding box. Nil means no spatial filter.
	Region *Region

	// MaxItems caps the number of returned items. Zero means DefaultMaxItems.
	MaxItems int
}

// Matches reports whether an item passes the type and region filters.
func (f ContentFilter) Matches(item *Item) bool {
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if item.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Region != nil && !f.Region.Contains(item.Position) {
		return false
	}
	return true
}

// SearchOptions configures a text search query.
type SearchOptions struct {
	// CaseSensitive switches matching from the default case-insensitive
	// containment to exact-case containment. Matching is plain codepoint
	// substring containment; no Unicode normalisation is applied.
	CaseSensitive bool

	// MaxItems caps the number of returned items. Zero means DefaultMaxItems.
	MaxItems int
}

// PathOptions configures a connected-path traversal.
type PathOptions struct {
	// MaxDepth bounds the traversal in edge hops from the start item (which
	// is depth 0). Zero means DefaultMaxDepth; negative values are rejected
	// and values above MaxDepthCeiling are clamped to it.
	MaxDepth int
}

// ResultMetadata describes a query result.
type ResultMetadata struct {
	BoardID        string    `json:"boardId"`
	ItemCount      int       `json:"itemCount"`
	ConnectorCount int       `json:"connectorCount"`
	Timestamp      time.Time `json:"timestamp"`

	// Truncated is set when MaxItems cut the item list short.
	Truncated bool `json:"truncated"`

	// Bounds echoes the region filter for region-bounded queries.
	Bounds *Region `json:"bounds,omitempty"`
}

// SearchInfo carries search-specific result fields.
type SearchInfo struct {
	Query         string `json:"query"`
	CaseSensitive bool   `json:"caseSensitive"`
	ResultCount   int    `json:"resultCount"`
}

// PathStep is one edge discovered during traversal, in its original
// direction, with the depth at which the far endpoint was first reached.
type PathStep struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
	Depth int    `json:"depth"`
}

// TraversalInfo carries connected-path-specific result fields.
type TraversalInfo struct {
	StartItem       string     `json:"startItem"`
	MaxDepth        int        `json:"traversalDepth"`
	Paths           []PathStep `json:"paths"`
	MaxDepthReached int        `json:"maxDepthReached"`
}

// QueryResult is the canonical, protocol-agnostic result every front-end
// serialises into its own wire format.
type QueryResult struct {
	Metadata ResultMetadata `json:"metadata"`

	// Items matched by the operation, in snapshot order.
	Items []Item `json:"items"`

	// Connectors whose endpoints are both in the matched item set.
	Connectors []Connector `json:"connections"`

	// Graph is the per-item adjacency view. Populated for full/region
	// queries over the matched set, and for connected-path queries
	// restricted to the visited set.
	Graph map[string]Adjacency `json:"graph,omitempty"`

	// Search is set for search operations only.
	Search *SearchInfo `json:"search,omitempty"`

	// Traversal is set for connected-path operations only.
	Traversal *TraversalInfo `json:"traversal,omitempty"`
}
