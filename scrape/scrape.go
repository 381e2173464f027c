// Package scrape fetches prices and performance figures from the two
// upstream financial sites. It owns the HTTP plumbing (timeout, retries,
// exponential backoff) and the page extraction rules; everything it returns
// is an exact decimal already checked against the locale convention of the
// sites.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tkeeble/folio"
)

const (
	// A browser-like agent, the sites answer bots with a 403.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	defaultBackoffBase = 1 * time.Second
	defaultBackoffCap  = 8 * time.Second
)

// Client scrapes both upstream sites. It implements folio.PriceSource.
//
// The zero value is not usable; NewClient fills in the defaults. Base URLs
// are overridable so tests can point the client at a local server.
type Client struct {
	HTTP        *http.Client
	UserAgent   string
	MaxAttempts int
	BackoffBase time.Duration
	BackoffCap  time.Duration
	Format      NumberFormat

	FTBaseURL    string
	YahooBaseURL string
}

var _ folio.PriceSource = (*Client)(nil)

// NewClient returns a client with the production defaults: 10s request
// timeout, 3 attempts, exponential backoff 1s doubling up to 8s.
func NewClient() *Client {
	return &Client{
		HTTP:         &http.Client{Timeout: defaultTimeout},
		UserAgent:    defaultUserAgent,
		MaxAttempts:  defaultMaxAttempts,
		BackoffBase:  defaultBackoffBase,
		BackoffCap:   defaultBackoffCap,
		Format:       DefaultFormat,
		FTBaseURL:    ftBaseURL,
		YahooBaseURL: yahooBaseURL,
	}
}

// Price fetches the instrument's current price from the stock's selected
// source, in the quotation currency of the page (raw GBX included).
func (c *Client) Price(ctx context.Context, s *folio.Stock) (decimal.Decimal, error) {
	switch s.Source {
	case folio.SourceFT:
		url, err := c.ftPriceURL(s)
		if err != nil {
			return decimal.Decimal{}, err
		}
		body, err := c.fetch(ctx, url)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return parseFTPrice(body, c.Format)
	case folio.SourceYahoo:
		body, err := c.fetch(ctx, c.YahooBaseURL+s.Code)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return parseYahooPrice(body, c.Format)
	}
	return decimal.Decimal{}, fmt.Errorf("stock %s: unknown source %q", s.Nickname, s.Source)
}

// Performance fetches the published performance percentages. Only the FT
// performance tearsheet carries them, whatever source the daily price uses.
func (c *Client) Performance(ctx context.Context, s *folio.Stock) (map[folio.Metric]decimal.Decimal, error) {
	url, err := c.ftPerformanceURL(s)
	if err != nil {
		return nil, err
	}
	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return parseFTPerformance(body, c.Format)
}

// backoff returns the delay after the given zero-based failed attempt:
// min(base * 2^attempt, cap).
func (c *Client) backoff(attempt int) time.Duration {
	d := c.BackoffBase << attempt
	if d > c.BackoffCap || d <= 0 {
		return c.BackoffCap
	}
	return d
}

// fetch GETs the url, retrying transport failures (network errors and
// non-2xx statuses) with exponential backoff. The context is honored during
// the request and during every backoff sleep; parse failures are not
// fetch's concern. After the attempts are exhausted it reports a single
// TransportError carrying the last cause.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	timedOut := false

	for attempt := 0; attempt < c.MaxAttempts; attempt++ {
		body, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		timedOut = isTimeout(err)
		log.Printf("fetch attempt %d/%d failed for %s: %v", attempt+1, c.MaxAttempts, url, err)

		if err := sleep(ctx, c.backoff(attempt)); err != nil {
			return nil, err
		}
	}

	return nil, &folio.TransportError{
		URL:      url,
		Attempts: c.MaxAttempts,
		Timeout:  timedOut,
		Err:      lastErr,
	}
}

// get performs a single GET and returns the body for any 2xx response.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create request for %q: %w", url, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http %s", resp.Status)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("cannot read response body: %w", err)
	}
	return buf.Bytes(), nil
}

// sleep waits for d unless the context ends first.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
