package domain

import "errors"

// Domain errors represent the query-engine error taxonomy.
// These are distinct from transport-level errors, which the miro connector
// maps onto this set before they reach a front-end.
var (
	// ErrBoardNotFound indicates the upstream reports no such board, or the
	// configured credential has no access to it.
	ErrBoardNotFound = errors.New("board not found")

	// ErrUpstreamUnavailable indicates the upstream could not be reached.
	// Transient; the caller may retry.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrRateLimited indicates the upstream rate limit was exhausted after
	// bounded retries. Transient; the caller may retry later.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidParameters indicates malformed caller input (bad region
	// bounds, empty search text, non-positive depth). Checked before any
	// upstream call is made.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrItemNotFound indicates a traversal start item is absent from the
	// board's current item set.
	ErrItemNotFound = errors.New("item not found")

	// ErrTokenMissing indicates no upstream access token is configured.
	ErrTokenMissing = errors.New("access token not configured")
)

// IsRetryable reports whether the error is transient from the caller's point
// of view.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, ErrRateLimited)
}
