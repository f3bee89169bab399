package domain

// Edge is one adjacency entry: the connector joining an item to a neighbour.
// Direction and label of the underlying connector are preserved even though
// traversal treats the graph as undirected.
type Edge struct {
	// ConnectorID is the underlying connector's id.
	ConnectorID string `json:"connectorId"`

	// OtherID is the neighbouring item id (target for outgoing edges, source
	// for incoming ones).
	OtherID string `json:"itemId"`

	// Label is the connector caption, if any.
	Label string `json:"label,omitempty"`
}

// Adjacency holds an item's outgoing and incoming edges.
type Adjacency struct {
	Outgoing []Edge `json:"outgoing"`
	Incoming []Edge `json:"incoming"`
}

// GraphIndex is a derived, read-only adjacency view over one BoardSnapshot.
// It is rebuilt whenever a new snapshot replaces a cached one and never
// mutated in place.
type GraphIndex struct {
	adjacency map[string]*Adjacency
}

// BuildGraphIndex builds the adjacency index in a single pass over the
// snapshot's connectors. Connectors referencing an item id absent from the
// snapshot are skipped: dangling edges stay out of traversal but remain in
// the snapshot's raw connector list.
func BuildGraphIndex(snapshot *BoardSnapshot) *GraphIndex {
	adjacency := make(map[string]*Adjacency, len(snapshot.Items))
	for i := range snapshot.Items {
		adjacency[snapshot.Items[i].ID] = &Adjacency{}
	}

	for _, conn := range snapshot.Connectors {
		from, okFrom := adjacency[conn.From]
		to, okTo := adjacency[conn.To]
		if !okFrom || !okTo {
			continue // dangling
		}
		from.Outgoing = append(from.Outgoing, Edge{
			ConnectorID: conn.ID,
			OtherID:     conn.To,
			Label:       conn.Label,
		})
		to.Incoming = append(to.Incoming, Edge{
			ConnectorID: conn.ID,
			OtherID:     conn.From,
			Label:       conn.Label,
		})
	}

	return &GraphIndex{adjacency: adjacency}
}

// Neighbours returns the adjacency entry for an item id, or nil if the item
// is not part of the indexed snapshot. Lookup is O(1).
func (g *GraphIndex) Neighbours(itemID string) *Adjacency {
	return g.adjacency[itemID]
}

// Contains reports whether the item id is part of the indexed snapshot.
func (g *GraphIndex) Contains(itemID string) bool {
	_, ok := g.adjacency[itemID]
	return ok
}

// Len returns the number of indexed items.
func (g *GraphIndex) Len() int { return len(g.adjacency) }
