package scrape

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/tkeeble/folio"
)

const ftBaseURL = "https://markets.ft.com/data/"

// ftPriceURL returns the tearsheet page carrying the current price for the
// instrument type. Funds quirkily publish their price on the performance
// tearsheet, the others on the summary one.
func (c *Client) ftPriceURL(s *folio.Stock) (string, error) {
	var path string
	switch s.Type {
	case folio.Equity:
		path = "equities/tearsheet/summary?s="
	case folio.Fund:
		path = "funds/tearsheet/performance?s="
	case folio.ETF:
		path = "etfs/tearsheet/summary?s="
	case folio.CurrencyStock:
		path = "currencies/tearsheet/summary?s="
	default:
		return "", fmt.Errorf("stock %s: unknown stock type %q", s.Nickname, s.Type)
	}
	return c.FTBaseURL + path + s.Code, nil
}

// ftPerformanceURL returns the performance tearsheet; only funds and ETFs
// have one.
func (c *Client) ftPerformanceURL(s *folio.Stock) (string, error) {
	var path string
	switch s.Type {
	case folio.Fund:
		path = "funds/tearsheet/performance?s="
	case folio.ETF:
		path = "etfs/tearsheet/performance?s="
	default:
		return "", fmt.Errorf("stock %s: no performance page for type %q", s.Nickname, s.Type)
	}
	return c.FTBaseURL + path + s.Code, nil
}

// parseFTPrice extracts the quoted price from a tearsheet page. The anchor
// is the first value element of the quote data list; when the element is
// gone the page shape changed and there is nothing to salvage.
func parseFTPrice(body []byte, f NumberFormat) (decimal.Decimal, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return decimal.Decimal{}, folio.Parsef("cannot parse page: %v", err)
	}

	el := doc.Find("span.mod-ui-data-list__value").First()
	if el.Length() == 0 {
		return decimal.Decimal{}, folio.Parsef("price element not found, page structure may have changed")
	}
	text := strings.TrimSpace(el.Text())
	if text == "" {
		return decimal.Decimal{}, folio.Parsef("price element is empty")
	}
	return f.Price(text)
}

// parseFTPerformance extracts the cumulative performance row from the
// performance tearsheet. The table's fixed schema is one header row then a
// data row of a label cell followed by the 5y..1m columns; fewer rows or
// columns than that is a shape change and fails the parse. Individual
// no-data cells are fine, the metric is simply absent from the result.
func parseFTPerformance(body []byte, f NumberFormat) (map[folio.Metric]decimal.Decimal, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, folio.Parsef("cannot parse page: %v", err)
	}

	container := doc.Find("div.mod-ui-table--freeze-pane__scroll-container").First()
	if container.Length() == 0 {
		return nil, folio.Parsef("performance table not found, page structure may have changed")
	}
	rows := container.Find("tr")
	if rows.Length() < 2 {
		return nil, folio.Parsef("performance table has %d rows, want at least 2", rows.Length())
	}

	cells := rows.Eq(1).Find("td")
	if cells.Length() < len(folio.Metrics)+1 {
		return nil, folio.Parsef("performance row has %d columns, want %d", cells.Length(), len(folio.Metrics)+1)
	}

	metrics := make(map[folio.Metric]decimal.Decimal)
	for i, m := range folio.Metrics {
		// Column 0 is the row label, data starts at 1.
		text := strings.TrimSpace(cells.Eq(i + 1).Text())
		v, ok, err := f.Metric(text)
		if err != nil {
			log.Printf("skipping %s cell: %v", m, err)
			continue
		}
		if !ok {
			continue
		}
		metrics[m] = v
	}
	return metrics, nil
}
