package scrape

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tkeeble/folio"
)

// noData is the placeholder both sites print in cells that have no value.
const noData = "--"

// NumberFormat is the locale convention used to read numbers off a page.
// It is explicit configuration, one value per source, never process-wide
// state: the sites serve en-US formatting regardless of the reader's locale.
type NumberFormat struct {
	Grouping rune // thousands separator
	Decimal  rune // decimal separator
}

// DefaultFormat is the en-US convention both sites use.
var DefaultFormat = NumberFormat{Grouping: ',', Decimal: '.'}

// clean strips whitespace and a trailing percent sign, then rewrites the
// configured separators into Go's.
func (f NumberFormat) clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, string(f.Grouping), "")
	if f.Decimal != '.' {
		s = strings.ReplaceAll(s, string(f.Decimal), ".")
	}
	return s
}

// Price converts a mandatory price string to an exact decimal. Empty input
// and the no-data placeholder are parse failures here: a price page without
// a price is a broken page, and zero is never a stand-in for "unavailable".
func (f NumberFormat) Price(s string) (decimal.Decimal, error) {
	cleaned := f.clean(s)
	if cleaned == "" || cleaned == noData {
		return decimal.Decimal{}, folio.Parsef("empty price value %q", s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, folio.Parsef("cannot convert %q to decimal: %v", s, err)
	}
	return d, nil
}

// Metric converts one performance cell. The no-data placeholder and empty
// cells are a legitimate absence, reported as ok=false with no error, so
// callers can always tell a missing metric from a zero return. Anything
// else that fails to parse is a ParseError.
func (f NumberFormat) Metric(s string) (d decimal.Decimal, ok bool, err error) {
	cleaned := f.clean(s)
	if cleaned == "" || cleaned == noData {
		return decimal.Decimal{}, false, nil
	}
	d, perr := decimal.NewFromString(cleaned)
	if perr != nil {
		return decimal.Decimal{}, false, folio.Parsef("cannot convert %q to decimal: %v", s, perr)
	}
	return d, true, nil
}
