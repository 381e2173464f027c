package folio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TxType is the direction of a transaction.
type TxType string

const (
	Buy  TxType = "buy"
	Sell TxType = "sell"
)

// ValidateTxType checks that t is one of the known transaction types.
func ValidateTxType(t TxType) error {
	switch t {
	case Buy, Sell:
		return nil
	}
	return fmt.Errorf("unknown transaction type %q", t)
}

// Transaction is one immutable entry of the trade log, the source of truth
// for holding volumes. Volume is always positive, the direction is carried
// by Type.
type Transaction struct {
	ID        int64
	AccountID int64
	StockID   int64
	Type      TxType
	Date      time.Time
	Volume    int64
	Price     decimal.Decimal
	Cost      decimal.Decimal
}

func (t *Transaction) String() string {
	return fmt.Sprintf("%s %d on %s", t.Type, t.Volume, t.Date.Format("2006-01-02"))
}
