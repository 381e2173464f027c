package scrape

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/tkeeble/folio"
)

const yahooBaseURL = "https://finance.yahoo.com/quote/"

// parseYahooPrice extracts the quoted price from a Yahoo quote page,
// anchored on the qsp-price test id.
func parseYahooPrice(body []byte, f NumberFormat) (decimal.Decimal, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return decimal.Decimal{}, folio.Parsef("cannot parse page: %v", err)
	}

	el := doc.Find(`span[data-testid="qsp-price"]`).First()
	if el.Length() == 0 {
		return decimal.Decimal{}, folio.Parsef("price element not found, page structure may have changed")
	}
	text := strings.TrimSpace(el.Text())
	if text == "" {
		return decimal.Decimal{}, folio.Parsef("price element is empty")
	}
	return f.Price(text)
}
