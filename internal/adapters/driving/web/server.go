// Package web provides the HTTP front-ends for MiroView: the command
// endpoint used by filter-style clients and the direct REST API. Both
// translate their wire formats into the canonical board queries and share
// the process-wide snapshot cache with the MCP front-end.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openboard-labs/miroview-cli/internal/core/ports/driven"
	"github.com/openboard-labs/miroview-cli/internal/core/ports/driving"
)

// Version is the web front-end version, reported by the service descriptor.
const Version = "0.2.0"

// Server handles HTTP requests against the board query engine.
type Server struct {
	query driving.BoardQueryService

	// stats reports snapshot-cache counters on /health; optional.
	stats func() driven.CacheStats

	// tokenConfigured is reported on /health so operators can tell a missing
	// credential apart from upstream trouble.
	tokenConfigured bool
}

// Option configures a Server.
type Option func(*Server)

// WithCacheStats wires cache counters into the health endpoint.
func WithCacheStats(stats func() driven.CacheStats) Option {
	return func(s *Server) { s.stats = stats }
}

// WithTokenConfigured records whether an upstream credential is present.
func WithTokenConfigured(configured bool) Option {
	return func(s *Server) { s.tokenConfigured = configured }
}

// NewServer creates a new HTTP server over the query service.
func NewServer(query driving.BoardQueryService, opts ...Option) *Server {
	s := &Server{query: query}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router assembles the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	// Command interface for filter-style clients.
	r.Route("/filter/board", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/tools", s.handleListTools)
	})

	// Direct API for plain HTTP callers.
	r.Route("/api/board/{boardID}", func(r chi.Router) {
		r.Get("/", s.handleGetBoard)
		r.Get("/search", s.handleSearchBoard)
		r.Get("/connections/{itemID}", s.handleConnections)
	})

	return r
}

// Run serves HTTP on addr until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// handleRoot describes the service surfaces.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "miroview",
		"version": Version,
		"endpoints": map[string]any{
			"filter": map[string]string{
				"analyze": "/filter/board/analyze",
				"tools":   "/filter/board/tools",
			},
			"direct_api": map[string]string{
				"board":       "/api/board/{boardId}",
				"search":      "/api/board/{boardId}/search",
				"connections": "/api/board/{boardId}/connections/{itemId}",
			},
			"health": "/health",
		},
	})
}

// handleHealth reports liveness, credential presence and cache counters.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{
		"status":          "healthy",
		"miro_configured": s.tokenConfigured,
	}
	if s.stats != nil {
		cs := s.stats()
		body["cache"] = map[string]any{
			"hits":    cs.Hits,
			"misses":  cs.Misses,
			"fetches": cs.Fetches,
			"entries": cs.Entries,
		}
	}
	writeJSON(w, http.StatusOK, body)
}
