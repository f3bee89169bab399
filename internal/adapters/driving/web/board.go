package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

// handleGetBoard answers GET /api/board/{boardID}.
// Region bounds come from the left/right/top/bottom query parameters; either
// all four are present or none. The types parameter is a comma-separated
// item-type list.
func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	region, err := regionFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	filter := domain.ContentFilter{Region: region}
	if types := r.URL.Query().Get("types"); types != "" {
		// Filter types are matched verbatim. Only the ingest boundary folds
		// unknown upstream types into "other"; a filter naming a type no
		// item carries simply matches nothing.
		for _, t := range strings.Split(types, ",") {
			filter.Types = append(filter.Types, domain.ItemType(strings.TrimSpace(t)))
		}
	}

	result, err := s.query.GetBoardContent(r.Context(), boardID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSearchBoard answers GET /api/board/{boardID}/search?q=...
func (s *Server) handleSearchBoard(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")
	q := r.URL.Query().Get("q")
	caseSensitive := queryBool(r, "case_sensitive")

	opts := domain.SearchOptions{CaseSensitive: caseSensitive}
	result, err := s.query.SearchItems(r.Context(), boardID, q, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleConnections answers GET /api/board/{boardID}/connections/{itemID}.
func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")
	itemID := chi.URLParam(r, "itemID")

	opts := domain.PathOptions{}
	if depth := r.URL.Query().Get("depth"); depth != "" {
		d, err := strconv.Atoi(depth)
		if err != nil {
			writeError(w, fmt.Errorf("depth must be an integer: %w", domain.ErrInvalidParameters))
			return
		}
		// An explicit depth of zero is a caller error, unlike an omitted one.
		if d <= 0 {
			writeError(w, fmt.Errorf("depth must be positive: %w", domain.ErrInvalidParameters))
			return
		}
		opts.MaxDepth = d
	}

	result, err := s.query.ConnectedPath(r.Context(), boardID, itemID, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// regionFromQuery parses the four bound parameters. All four present yields
// a region, none yields nil, anything in between is a parameter error.
func regionFromQuery(r *http.Request) (*domain.Region, error) {
	names := [4]string{"left", "right", "top", "bottom"}
	var values [4]float64
	present := 0

	for i, name := range names {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number: %w", name, domain.ErrInvalidParameters)
		}
		values[i] = v
		present++
	}

	switch present {
	case 0:
		return nil, nil
	case 4:
		return &domain.Region{
			Left: values[0], Right: values[1], Top: values[2], Bottom: values[3],
		}, nil
	default:
		return nil, fmt.Errorf("region needs all of left, right, top, bottom: %w", domain.ErrInvalidParameters)
	}
}

// queryBool reads a boolean query parameter ("true" or "1").
func queryBool(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "true" || v == "1"
}
