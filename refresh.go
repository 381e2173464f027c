package folio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// PriceSource produces freshly scraped values for a stock. The scrape
// package implements it over the two upstream sites; tests substitute it
// freely.
type PriceSource interface {
	// Price returns the instrument's current price in its quotation
	// currency, raw GBX included.
	Price(ctx context.Context, s *Stock) (decimal.Decimal, error)

	// Performance returns the published performance percentages. Absent
	// metrics are absent keys, never zero values.
	Performance(ctx context.Context, s *Stock) (map[Metric]decimal.Decimal, error)
}

// ErrInFlight reports that a refresh of the same stock is already running.
var ErrInFlight = errors.New("refresh already in flight")

// Refresher orchestrates one stock's refresh: scrape, convert, validate,
// persist, then cascade to the dependent holdings. A failed scrape never
// touches the last-known-good price.
type Refresher struct {
	store     Store
	source    PriceSource
	valuation *Valuation
	now       func() time.Time

	mu       sync.Mutex
	inflight map[int64]struct{}
}

// NewRefresher creates a refresher over the given store and source.
func NewRefresher(store Store, source PriceSource) *Refresher {
	return &Refresher{
		store:     store,
		source:    source,
		valuation: NewValuation(store),
		now:       time.Now,
		inflight:  make(map[int64]struct{}),
	}
}

// acquire marks the stock as being refreshed, or fails when a concurrent
// refresh of the same stock holds the slot.
func (r *Refresher) acquire(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inflight[id]; busy {
		return ErrInFlight
	}
	r.inflight[id] = struct{}{}
	return nil
}

func (r *Refresher) release(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, id)
}

// RefreshPrice scrapes a new price for the stock and cascades to its
// holdings.
//
// Inactive stocks and stocks with the no-source sentinel code are skipped
// entirely: a successful no-op with no writes at all. For every attempted
// stock the holding cascade runs whether or not the price update succeeded,
// because a transaction recorded elsewhere may have changed volumes even
// when the price did not.
func (r *Refresher) RefreshPrice(ctx context.Context, s *Stock) error {
	if !s.HasSource() {
		return nil
	}
	if err := r.acquire(s.ID); err != nil {
		return fmt.Errorf("%s: %w", s.Nickname, err)
	}
	defer r.release(s.ID)

	priceErr := r.attemptPriceUpdate(ctx, s)
	if priceErr != nil {
		log.Printf("price update failed for %s, keeping last price: %v", s.Nickname, priceErr)
	}
	cascadeErr := r.CascadeHoldings(s)

	return errors.Join(priceErr, cascadeErr)
}

// attemptPriceUpdate fetches, converts and validates one price, and persists
// it together with a new history point. On any failure the stored price is
// left exactly as it was.
func (r *Refresher) attemptPriceUpdate(ctx context.Context, s *Stock) error {
	raw, err := r.source.Price(ctx, s)
	if err != nil {
		return err
	}

	price := raw
	if s.Currency == GBX {
		// Pence to pounds at ingestion, the stored price is always in the
		// settlement currency.
		price = raw.Div(decimal.NewFromInt(100))
	}

	if !price.IsPositive() {
		return &ValidationError{Reason: fmt.Sprintf("price %s is not positive", price)}
	}

	t := r.now()
	s.CurrentPrice = price
	s.PriceUpdated = &t
	if err := r.store.SaveStock(s); err != nil {
		return fmt.Errorf("saving stock %s: %w", s.Nickname, err)
	}
	if err := r.store.AppendPrice(&Price{StockID: s.ID, Time: t, Price: price}); err != nil {
		return fmt.Errorf("recording price point for %s: %w", s.Nickname, err)
	}
	return nil
}

// CascadeHoldings recomputes every holding of the stock, joining individual
// failures so one bad holding does not hide the others.
func (r *Refresher) CascadeHoldings(s *Stock) error {
	holdings, err := r.store.HoldingsForStock(s.ID)
	if err != nil {
		return fmt.Errorf("loading holdings for %s: %w", s.Nickname, err)
	}

	var errs error
	for _, h := range holdings {
		if err := r.valuation.RecomputeHolding(h); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// RefreshPerformance scrapes the performance tearsheet for a fund or ETF
// and stores the published metrics. For any other instrument type it is a
// no-op, not an error: the source simply has no performance page for them.
// Metrics the source reports as no-data keep their previously stored value.
//
// It takes the same per-stock in-flight slot as RefreshPrice: the save
// writes the whole stock row, so running it concurrently with a price
// refresh of the same stock could clobber the freshly written price with
// this caller's stale copy.
func (r *Refresher) RefreshPerformance(ctx context.Context, s *Stock) error {
	if s.Type != Fund && s.Type != ETF {
		return nil
	}
	if !s.HasSource() {
		return nil
	}
	if err := r.acquire(s.ID); err != nil {
		return fmt.Errorf("%s: %w", s.Nickname, err)
	}
	defer r.release(s.ID)

	metrics, err := r.source.Performance(ctx, s)
	if err != nil {
		return err
	}

	for m, v := range metrics {
		s.SetMetric(m, v)
	}
	if err := r.store.SaveStock(s); err != nil {
		return fmt.Errorf("saving performance for %s: %w", s.Nickname, err)
	}
	return nil
}
