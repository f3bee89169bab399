package miro

import (
	"errors"
	"fmt"
	"time"

	"github.com/openboard-labs/miroview-cli/internal/core/domain"
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("miro: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// APIError represents a Miro API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("miro: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates a board was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsAccessDenied checks if the error indicates a credential rejection or a
// board the credential cannot see.
func IsAccessDenied(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// toDomainError maps transport-level errors onto the domain taxonomy.
// The upstream does not distinguish "no such board" from "no access to the
// board" for callers, so both fold into domain.ErrBoardNotFound.
func toDomainError(err error, boardID string) error {
	switch {
	case err == nil:
		return nil
	case IsNotFound(err):
		return fmt.Errorf("board %q: %w", boardID, domain.ErrBoardNotFound)
	case IsAccessDenied(err):
		return fmt.Errorf("board %q: credential rejected: %w", boardID, domain.ErrBoardNotFound)
	case IsRateLimited(err):
		return fmt.Errorf("board %q: %w: %v", boardID, domain.ErrRateLimited, err)
	default:
		return fmt.Errorf("board %q: %w: %v", boardID, domain.ErrUpstreamUnavailable, err)
	}
}
