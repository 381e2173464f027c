package folio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is the derived position of one stock inside one account.
//
// It is a materialized cache, fully recomputable from the transaction log
// and the stock's current price at any time: Volume is net bought minus net
// sold, CurrentValue is Volume times Stock.CurrentPrice. Volume may be
// negative when recorded sells exceed recorded buys; that is a legitimate
// (short) state, not an error.
type Holding struct {
	ID        int64
	StockID   int64
	AccountID int64

	Volume       int64
	BookCost     decimal.Decimal
	CurrentValue decimal.Decimal
	ValueUpdated *time.Time
}
