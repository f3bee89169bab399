// Package miro implements the BoardFetcher port against the Miro REST v2
// API. It follows continuation cursors until a board is fully paged in,
// throttles and retries around the upstream rate limit, and normalises the
// heterogeneous item payloads into the canonical domain schema.
package miro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
	"github.com/openboard-labs/miroview-cli/internal/core/ports/driven"
	"github.com/openboard-labs/miroview-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.BoardFetcher = (*Client)(nil)

// Client is the Miro REST v2 API client.
type Client struct {
	config      Config
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a new Miro API client. The access token is carried by an
// oauth2 static-token transport; Miro personal access tokens and OAuth access
// tokens both work as plain bearer tokens.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = cfg.Timeout

	return &Client{
		config:      cfg,
		httpClient:  httpClient,
		rateLimiter: NewRateLimiter(),
	}
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// FetchSnapshot fetches all items and connectors for the board and assembles
// a normalised snapshot. Item and connector pagination run concurrently; the
// snapshot preserves upstream page order so results are deterministic for a
// fixed board state.
func (c *Client) FetchSnapshot(ctx context.Context, boardID string) (*domain.BoardSnapshot, error) {
	if c.config.AccessToken == "" {
		return nil, domain.ErrTokenMissing
	}
	if boardID == "" {
		return nil, fmt.Errorf("empty board id: %w", domain.ErrInvalidParameters)
	}

	logger.Debug("Fetching board %s from upstream", boardID)

	var (
		items      []domain.Item
		connectors []domain.Connector
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := fetchAllPages[wireItem](gctx, c, boardID, "items")
		if err != nil {
			return err
		}
		items = make([]domain.Item, 0, len(raw))
		for _, w := range raw {
			items = append(items, normaliseItem(w))
		}
		return nil
	})
	g.Go(func() error {
		raw, err := fetchAllPages[wireConnector](gctx, c, boardID, "connectors")
		if err != nil {
			return err
		}
		connectors = make([]domain.Connector, 0, len(raw))
		for _, w := range raw {
			connectors = append(connectors, normaliseConnector(w))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, toDomainError(err, boardID)
	}

	logger.Debug("Board %s: %d items, %d connectors", boardID, len(items), len(connectors))

	return &domain.BoardSnapshot{
		BoardID:    boardID,
		Items:      items,
		Connectors: connectors,
		FetchedAt:  time.Now(),
	}, nil
}

// ValidateCredentials checks the configured token by listing the first page
// of the board's items.
func (c *Client) ValidateCredentials(ctx context.Context, boardID string) error {
	if c.config.AccessToken == "" {
		return domain.ErrTokenMissing
	}
	_, err := c.getPage(ctx, boardID, "items", "")
	if err != nil {
		return toDomainError(err, boardID)
	}
	return nil
}

// fetchAllPages follows continuation cursors until the resource is exhausted.
func fetchAllPages[T any](ctx context.Context, c *Client, boardID, resource string) ([]T, error) {
	var all []T
	cursor := ""

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		body, err := c.getPage(ctx, boardID, resource, cursor)
		if err != nil {
			return nil, err
		}

		var p page[T]
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("decode %s page: %w", resource, err)
		}

		all = append(all, p.Data...)

		if p.Cursor == "" {
			break
		}
		cursor = p.Cursor
	}

	return all, nil
}

// getPage performs one page request with rate-limit waits and bounded
// exponential retry. Rate-limited and transient (5xx, transport) failures are
// retried up to MaxRetries; other API errors fail immediately.
func (c *Client) getPage(ctx context.Context, boardID, resource, cursor string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/boards/%s/%s", c.config.BaseURL, url.PathEscape(boardID), resource)

	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.config.PageLimit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	reqURL += "?" + params.Encode()

	var lastErr error
	delay := RetryDelay

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("Retrying %s (attempt %d/%d) after %s", reqURL, attempt, MaxRetries, delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		body, err := c.doGet(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("retries exhausted: %w", lastErr)
}

// doGet performs a single GET and returns the response body or a typed error.
func (c *Client) doGet(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if rlErr := c.rateLimiter.CheckRateLimit(resp); rlErr != nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, rlErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiErrorMessage(body, resp.Status),
			URL:        reqURL,
		}
	}

	return body, nil
}

// retryable reports whether a page request failure is worth retrying.
func retryable(err error) bool {
	if IsRateLimited(err) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	// Transport-level failure.
	return true
}

// apiErrorMessage extracts the upstream error message, falling back to the
// HTTP status line.
func apiErrorMessage(body []byte, status string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return status
}
