package folio

import "fmt"

// The refresh pipeline sorts every failure into one of four kinds, so that
// callers can tell a retryable network problem from a page that changed
// shape, a value that failed a sanity check, or an entity that is simply
// gone. Match them with errors.As.

// TransportError is a network-level failure (timeout, connection error,
// non-2xx status) that survived the fetcher's own retries. Retryable on the
// next scheduled run.
type TransportError struct {
	URL      string
	Attempts int
	Timeout  bool
	Err      error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("timeout after %d attempts for %s", e.Attempts, e.URL)
	}
	return fmt.Sprintf("fetch failed after %d attempts for %s: %v", e.Attempts, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError is a structural mismatch in a fetched page: a missing anchor,
// an empty value, a table with fewer rows or columns than the source used to
// publish. Never retried within the same refresh, the page will not change
// within seconds.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "parse: " + e.Reason }

// Parsef builds a ParseError with a formatted human-readable reason.
func Parsef(format string, args ...any) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

// ValidationError rejects a successfully scraped value that fails a sanity
// check, such as a price at or below zero. The previously stored value is
// left untouched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid: " + e.Reason }

// NotFoundError reports an entity missing from the store. Fatal for the item
// that referenced it.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}
