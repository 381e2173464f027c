package folio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is one point of the append-only price history: one row per
// successful scrape, never updated or deleted afterwards. The price is in
// the stock's settlement currency.
type Price struct {
	ID      int64
	StockID int64
	Time    time.Time
	Price   decimal.Decimal
}
