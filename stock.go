package folio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StockType classifies an instrument, and selects which tearsheet page the
// primary source serves for it.
type StockType string

const (
	Equity        StockType = "equity"
	Fund          StockType = "fund"
	ETF           StockType = "etf"
	CurrencyStock StockType = "currency"
)

// ValidateStockType checks that t is one of the known instrument types.
func ValidateStockType(t StockType) error {
	switch t {
	case Equity, Fund, ETF, CurrencyStock:
		return nil
	}
	return fmt.Errorf("unknown stock type %q", t)
}

// Currency is the quotation currency of an instrument.
//
// GBX (pence sterling) is a quotation unit, not a settlement currency: a
// price scraped in GBX is divided by 100 at ingestion so that
// Stock.CurrentPrice is always held in GBP or USD.
type Currency string

const (
	GBP Currency = "GBP"
	GBX Currency = "GBX"
	USD Currency = "USD"
)

// ValidateCurrency checks that c is one of the supported quotation currencies.
func ValidateCurrency(c Currency) error {
	switch c {
	case GBP, GBX, USD:
		return nil
	}
	return fmt.Errorf("unknown currency %q", c)
}

// Settlement returns the currency CurrentPrice is expressed in once ingested.
func (c Currency) Settlement() Currency {
	if c == GBX {
		return GBP
	}
	return c
}

// Source selects which upstream site's page structure applies to a stock.
// Each source is a fixed external endpoint with a known, fragile shape;
// breakage there surfaces as a ParseError, never as corrupted data.
type Source string

const (
	// SourceFT is the Financial Times tearsheet site, addressed by
	// exchange code (e.g. "MSFT:NSQ").
	SourceFT Source = "ft"
	// SourceYahoo is the Yahoo Finance quote page, addressed by ticker.
	SourceYahoo Source = "yahoo"
)

// ValidateSource checks that s is one of the two known source variants.
func ValidateSource(s Source) error {
	switch s {
	case SourceFT, SourceYahoo:
		return nil
	}
	return fmt.Errorf("unknown source %q", s)
}

// NoCode is the sentinel exchange code for instruments that have no upstream
// source at all. Refreshing such a stock is a no-op, not an error.
const NoCode = "-"

// Metric identifies one of the performance columns published on the
// primary source's performance tearsheet.
type Metric string

const (
	Perf5Y Metric = "5y"
	Perf3Y Metric = "3y"
	Perf1Y Metric = "1y"
	Perf6M Metric = "6m"
	Perf3M Metric = "3m"
	Perf1M Metric = "1m"
)

// Metrics lists the performance columns in the order the source publishes
// them (row 1, columns 1..6).
var Metrics = []Metric{Perf5Y, Perf3Y, Perf1Y, Perf6M, Perf3M, Perf1M}

// Stock is an instrument tracked by the portfolio.
//
// CurrentPrice is the last successfully scraped price, already converted to
// the settlement currency (never raw GBX pence). It is the source of truth
// for the unit price used by the valuation cascade. PriceUpdated is nil until
// the first successful scrape.
type Stock struct {
	ID       int64
	Name     string
	Code     string // exchange code on the selected source
	Nickname string // short display name used in progress and summaries

	Type     StockType
	Currency Currency
	Source   Source
	Active   bool

	CurrentPrice decimal.Decimal
	PriceUpdated *time.Time

	// Performance percentages, nil while the source has no data for the
	// period. A nil metric is "absent", distinct from a zero return.
	Perf5y *decimal.Decimal
	Perf3y *decimal.Decimal
	Perf1y *decimal.Decimal
	Perf6m *decimal.Decimal
	Perf3m *decimal.Decimal
	Perf1m *decimal.Decimal
}

func (s *Stock) String() string { return s.Nickname }

// HasSource reports whether the stock can be refreshed at all.
func (s *Stock) HasSource() bool { return s.Active && s.Code != NoCode }

// SetMetric stores one performance value on the matching field.
func (s *Stock) SetMetric(m Metric, v decimal.Decimal) {
	switch m {
	case Perf5Y:
		s.Perf5y = &v
	case Perf3Y:
		s.Perf3y = &v
	case Perf1Y:
		s.Perf1y = &v
	case Perf6M:
		s.Perf6m = &v
	case Perf3M:
		s.Perf3m = &v
	case Perf1M:
		s.Perf1m = &v
	}
}

// MetricValue returns the stored performance value for m, if any.
func (s *Stock) MetricValue(m Metric) (decimal.Decimal, bool) {
	var p *decimal.Decimal
	switch m {
	case Perf5Y:
		p = s.Perf5y
	case Perf3Y:
		p = s.Perf3y
	case Perf1Y:
		p = s.Perf1y
	case Perf6M:
		p = s.Perf6m
	case Perf3M:
		p = s.Perf3m
	case Perf1M:
		p = s.Perf1m
	}
	if p == nil {
		return decimal.Decimal{}, false
	}
	return *p, true
}
