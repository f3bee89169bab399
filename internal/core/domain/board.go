package domain

import "time"

// ItemType classifies a board item. The set mirrors the item types the
// upstream API distinguishes; anything else is ItemTypeOther.
type ItemType string

const (
	ItemTypeStickyNote ItemType = "sticky_note"
	ItemTypeShape      ItemType = "shape"
	ItemTypeText       ItemType = "text"
	ItemTypeCard       ItemType = "card"
	ItemTypeFrame      ItemType = "frame"
	ItemTypeOther      ItemType = "other"
)

// ParseItemType maps an upstream type string onto the known set. Unknown
// types map to ItemTypeOther so new upstream item kinds are kept, not
// dropped.
func ParseItemType(s string) ItemType {
	switch ItemType(s) {
	case ItemTypeStickyNote, ItemTypeShape, ItemTypeText, ItemTypeCard, ItemTypeFrame:
		return ItemType(s)
	default:
		return ItemTypeOther
	}
}

// Position is an item's board-space coordinate. The origin is the board
// centre; x grows rightward and y grows downward.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Item is one normalised visual element on a board. The heterogeneous
// upstream payloads are flattened into this single schema by the connector.
type Item struct {
	ID   string   `json:"id"`
	Type ItemType `json:"type"`

	// Text is the item's visible text, whichever upstream field carried it.
	Text string `json:"text"`

	Position Position `json:"position"`

	// Style holds the small set of normalised style attributes (color, shape).
	// Nil when the item carries none.
	Style map[string]string `json:"style,omitempty"`

	Tags       []string `json:"tags,omitempty"`
	CreatedBy  string   `json:"createdBy,omitempty"`
	ModifiedAt string   `json:"modifiedAt,omitempty"`
}

// Connector is a directed, optionally labelled edge between two items.
// Either endpoint may reference an item absent from the snapshot; such a
// connector is dangling and excluded from traversal.
type Connector struct {
	ID    string `json:"id"`
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
	Style string `json:"style,omitempty"`
}

// BoardSnapshot is a point-in-time copy of one board's full content. A
// snapshot is immutable once built; queries read it, never mutate it.
type BoardSnapshot struct {
	BoardID    string
	Items      []Item
	Connectors []Connector

	// FetchedAt is when the snapshot was taken from upstream. Query results
	// carry it as their timestamp so identical queries against the same
	// snapshot yield identical results.
	FetchedAt time.Time
}

// ItemByID returns the item with the given id, or nil.
func (s *BoardSnapshot) ItemByID(id string) *Item {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}

// ItemCount returns the number of items in the snapshot.
func (s *BoardSnapshot) ItemCount() int { return len(s.Items) }

// ConnectorCount returns the number of connectors in the snapshot.
func (s *BoardSnapshot) ConnectorCount() int { return len(s.Connectors) }

// Region is an inclusive axis-aligned bounding box in board coordinates.
type Region struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Validate checks that the bounds are ordered. Because y grows downward,
// top must not exceed bottom.
func (r Region) Validate() error {
	if r.Left > r.Right || r.Top > r.Bottom {
		return ErrInvalidParameters
	}
	return nil
}

// Contains reports whether the position falls within the region. Bounds are
// inclusive on all four edges.
func (r Region) Contains(p Position) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}
