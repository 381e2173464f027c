package folio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Valuation recomputes the derived values of the invariant chain:
// transactions and the current price are the sources of truth, holdings and
// account values are materialized from them.
type Valuation struct {
	store Store
	now   func() time.Time
}

// NewValuation creates a valuation cascade over the given store.
func NewValuation(store Store) *Valuation {
	return &Valuation{store: store, now: time.Now}
}

// RecomputeHolding rebuilds a holding from its transaction log and the
// stock's current persisted price.
//
// The net volume is bought minus sold over all transactions of the
// (stock, account) pair, both sums zero when no rows match. The price is
// read fresh from the store, not from any in-memory copy, so a concurrent
// price update is never shadowed by a stale value. A missing stock is fatal
// for the holding and propagates.
func (v *Valuation) RecomputeHolding(h *Holding) error {
	txs, err := v.store.Transactions(h.StockID, h.AccountID)
	if err != nil {
		return fmt.Errorf("loading transactions for holding %d: %w", h.ID, err)
	}

	var bought, sold int64
	for _, tx := range txs {
		switch tx.Type {
		case Buy:
			bought += tx.Volume
		case Sell:
			sold += tx.Volume
		}
	}

	stock, err := v.store.Stock(h.StockID)
	if err != nil {
		return fmt.Errorf("holding %d: %w", h.ID, err)
	}

	// A negative net volume (sells exceeding recorded buys) is kept as a
	// valid short position, the value just goes negative with it.
	h.Volume = bought - sold
	h.CurrentValue = stock.CurrentPrice.Mul(decimal.NewFromInt(h.Volume))
	t := v.now()
	h.ValueUpdated = &t

	if err := v.store.SaveHolding(h); err != nil {
		return fmt.Errorf("saving holding %d: %w", h.ID, err)
	}
	return nil
}

// RecomputeAccount sets the account value to the sum of its holdings'
// current values, zero when it has none, and persists it.
func (v *Valuation) RecomputeAccount(a *Account) error {
	holdings, err := v.store.HoldingsForAccount(a.ID)
	if err != nil {
		return fmt.Errorf("loading holdings for account %q: %w", a.Name, err)
	}

	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.CurrentValue)
	}
	a.Value = total

	if err := v.store.SaveAccount(a); err != nil {
		return fmt.Errorf("saving account %q: %w", a.Name, err)
	}
	return nil
}
