package miro

import (
	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

// Upstream wire shapes. The items endpoint returns heterogeneous payloads
// per item type; only the fields needed for normalisation are decoded and
// nothing untyped leaves this package.

type wireItem struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Data     struct {
		Content string `json:"content"`
		Title   string `json:"title"`
		Text    string `json:"text"`
		Shape   string `json:"shape"`
	} `json:"data"`
	Style struct {
		FillColor string `json:"fillColor"`
		Color     string `json:"color"`
	} `json:"style"`
	Position *struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"position"`
	Tags      []string `json:"tags"`
	CreatedBy *struct {
		ID string `json:"id"`
	} `json:"createdBy"`
	ModifiedAt string `json:"modifiedAt"`
}

type wireConnector struct {
	ID        string `json:"id"`
	StartItem *struct {
		ID string `json:"id"`
	} `json:"startItem"`
	EndItem *struct {
		ID string `json:"id"`
	} `json:"endItem"`
	Captions []struct {
		Content string `json:"content"`
	} `json:"captions"`
	Style struct {
		LineType string `json:"lineType"`
	} `json:"style"`
}

// page is the common envelope of the paginated list endpoints.
type page[T any] struct {
	Data   []T    `json:"data"`
	Cursor string `json:"cursor"`
	Limit  int    `json:"limit"`
	Size   int    `json:"size"`
	Total  int    `json:"total"`
}

// normaliseItem maps an upstream item payload to the canonical schema.
// Text comes from whichever of content/title/text the item type populates;
// unknown item types become domain.ItemTypeOther rather than being dropped.
func normaliseItem(w wireItem) domain.Item {
	text := w.Data.Content
	if text == "" {
		text = w.Data.Title
	}
	if text == "" {
		text = w.Data.Text
	}

	style := make(map[string]string)
	if color := w.Style.FillColor; color != "" {
		style["color"] = color
	} else if w.Style.Color != "" {
		style["color"] = w.Style.Color
	}
	if w.Data.Shape != "" {
		style["shape"] = w.Data.Shape
	}
	if len(style) == 0 {
		style = nil
	}

	item := domain.Item{
		ID:         w.ID,
		Type:       domain.ParseItemType(w.Type),
		Text:       text,
		Style:      style,
		Tags:       w.Tags,
		ModifiedAt: w.ModifiedAt,
	}
	if w.Position != nil {
		item.Position = domain.Position{X: w.Position.X, Y: w.Position.Y}
	}
	if w.CreatedBy != nil {
		item.CreatedBy = w.CreatedBy.ID
	}
	return item
}

// normaliseConnector maps an upstream connector payload to the canonical
// schema. Connectors with a missing endpoint are kept; the graph index treats
// them as dangling.
func normaliseConnector(w wireConnector) domain.Connector {
	conn := domain.Connector{
		ID:    w.ID,
		Style: w.Style.LineType,
	}
	if w.StartItem != nil {
		conn.From = w.StartItem.ID
	}
	if w.EndItem != nil {
		conn.To = w.EndItem.ID
	}
	if len(w.Captions) > 0 {
		conn.Label = w.Captions[0].Content
	}
	return conn
}
