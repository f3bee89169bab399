package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

// Command names accepted by the analyze endpoint. Each maps 1:1 onto a
// canonical query operation.
const (
	CommandFullBoard     = "full_board"
	CommandSearch        = "search"
	CommandConnectedPath = "connected_path"
)

// boundsParam is the wire shape of a bounding box.
type boundsParam struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

func (b *boundsParam) region() *domain.Region {
	if b == nil {
		return nil
	}
	return &domain.Region{Left: b.Left, Right: b.Right, Top: b.Top, Bottom: b.Bottom}
}

// analyzeParams carries the command-specific parameters. MaxDepth is a
// pointer so an explicit zero can be told apart from an omitted depth.
type analyzeParams struct {
	Bounds        *boundsParam `json:"bounds,omitempty"`
	IncludeTypes  []string     `json:"include_types,omitempty"`
	SearchText    string       `json:"search_text,omitempty"`
	CaseSensitive bool         `json:"case_sensitive,omitempty"`
	StartItemID   string       `json:"start_item_id,omitempty"`
	MaxDepth      *int         `json:"max_depth,omitempty"`
}

// analyzeRequest is one command against one board.
type analyzeRequest struct {
	BoardID string        `json:"board_id"`
	Command string        `json:"command"`
	Params  analyzeParams `json:"params"`
}

// handleAnalyze executes a single board command and answers
// {success, data | error, command}.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeCommandError(w, "", fmt.Errorf("malformed request body: %w", domain.ErrInvalidParameters))
		return
	}
	if req.BoardID == "" {
		s.writeCommandError(w, req.Command, fmt.Errorf("board_id is required: %w", domain.ErrInvalidParameters))
		return
	}
	if req.Command == "" {
		req.Command = CommandFullBoard
	}

	var (
		result *domain.QueryResult
		err    error
	)

	switch req.Command {
	case CommandFullBoard:
		filter := domain.ContentFilter{Region: req.Params.Bounds.region()}
		for _, t := range req.Params.IncludeTypes {
			filter.Types = append(filter.Types, domain.ItemType(t))
		}
		result, err = s.query.GetBoardContent(r.Context(), req.BoardID, filter)

	case CommandSearch:
		opts := domain.SearchOptions{CaseSensitive: req.Params.CaseSensitive}
		result, err = s.query.SearchItems(r.Context(), req.BoardID, req.Params.SearchText, opts)

	case CommandConnectedPath:
		if req.Params.MaxDepth != nil && *req.Params.MaxDepth <= 0 {
			err = fmt.Errorf("max_depth must be positive: %w", domain.ErrInvalidParameters)
			break
		}
		opts := domain.PathOptions{}
		if req.Params.MaxDepth != nil {
			opts.MaxDepth = *req.Params.MaxDepth
		}
		result, err = s.query.ConnectedPath(r.Context(), req.BoardID, req.Params.StartItemID, opts)

	default:
		err = fmt.Errorf("unknown command %q: %w", req.Command, domain.ErrInvalidParameters)
	}

	if err != nil {
		s.writeCommandError(w, req.Command, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"command": req.Command,
		"data":    result,
	})
}

// writeCommandError answers the command envelope's failure shape.
func (s *Server) writeCommandError(w http.ResponseWriter, command string, err error) {
	kind, status := errorKind(err)
	writeJSON(w, status, map[string]any{
		"success": false,
		"command": command,
		"error":   errorBody{Kind: kind, Message: err.Error()},
	})
}

// handleListTools describes the available commands for filter clients.
func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tools": []map[string]any{
			{
				"name":     "analyze_board",
				"endpoint": "/filter/board/analyze",
				"commands": []map[string]any{
					{
						"command":     CommandFullBoard,
						"description": "Get entire board content",
						"params": map[string]string{
							"bounds":        "optional: {left, right, top, bottom}",
							"include_types": "optional: array of item types",
						},
					},
					{
						"command":     CommandConnectedPath,
						"description": "Trace connections from an item",
						"params": map[string]string{
							"start_item_id": "required: starting item ID",
							"max_depth":     "optional: traversal depth (default 5)",
						},
					},
					{
						"command":     CommandSearch,
						"description": "Search items by text",
						"params": map[string]string{
							"search_text":    "required: text to search",
							"case_sensitive": "optional: boolean (default false)",
						},
					},
				},
			},
		},
	})
}
