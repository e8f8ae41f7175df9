package marketplace

import (
	"errors"
	"fmt"
)

// Input validation failures, detected before any network I/O.
var (
	ErrMissingQuery             = errors.New("missing search query")
	ErrMissingCredential        = errors.New("missing access token")
	ErrMissingAuthorizationCode = errors.New("missing authorization code")
)

// UpstreamError reports a failed call against a marketplace endpoint. Status
// and Body carry the upstream response when one was received; Err carries the
// transport error otherwise.
type UpstreamError struct {
	Op     string // "token exchange", "search", "user items"
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: upstream returned %d: %s", e.Op, e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ScrapeError wraps a failure of the headless-browser path, including
// navigation timeouts (Cause is context.DeadlineExceeded).
type ScrapeError struct {
	Cause error
}

func (e *ScrapeError) Error() string { return fmt.Sprintf("scrape failed: %v", e.Cause) }

func (e *ScrapeError) Unwrap() error { return e.Cause }
