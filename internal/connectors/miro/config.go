package miro

import "time"

const (
	// DefaultBaseURL is the Miro REST v2 API root.
	DefaultBaseURL = "https://api.miro.com/v2"

	// DefaultPageLimit is the page size requested from the upstream. The
	// upstream bounds page sizes itself, so a single page never suffices for
	// a real board and the client always follows continuation cursors.
	DefaultPageLimit = 50

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for rate-limited or
	// transient-failure page requests.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries; it doubles on each
	// attempt up to MaxRetries.
	RetryDelay = time.Second
)

// Config configures the Miro client.
type Config struct {
	// AccessToken is the upstream credential. A single token is shared by
	// all callers; MiroView does not do per-caller authentication.
	AccessToken string

	// BaseURL overrides the API root, mainly for tests. Empty means
	// DefaultBaseURL.
	BaseURL string

	// PageLimit overrides the page size. Zero means DefaultPageLimit.
	PageLimit int

	// Timeout overrides the per-request timeout. Zero means DefaultTimeout.
	Timeout time.Duration
}

// withDefaults returns the config with unset fields filled in.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.PageLimit <= 0 {
		c.PageLimit = DefaultPageLimit
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
