package folio

import (
	"errors"
	"fmt"
	"testing"
)

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{URL: "https://markets.ft.com/x", Attempts: 3, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want the cause to unwrap")
	}
	if got, want := err.Error(), "fetch failed after 3 attempts for https://markets.ft.com/x: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.Timeout = true
	if got, want := err.Error(), "timeout after 3 attempts for https://markets.ft.com/x"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorKindsMatchThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("refreshing VWRL: %w", Parsef("price element not found"))

	var perr *ParseError
	if !errors.As(wrapped, &perr) {
		t.Fatal("errors.As failed to find the ParseError through the wrap")
	}
	if perr.Reason != "price element not found" {
		t.Errorf("Reason = %q", perr.Reason)
	}

	var terr *TransportError
	if errors.As(wrapped, &terr) {
		t.Error("a ParseError matched as TransportError")
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Entity: "stock", Key: "42"}
	if got, want := err.Error(), "stock 42 not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
