package folio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money pairs an exact decimal amount with its currency, for display.
// Entities keep plain decimals; Money exists so that reports and summaries
// format values with the right symbol and grouping (£1,234.56).
type Money struct {
	value decimal.Decimal
	cur   Currency
}

// M builds a Money from an exact amount and a currency. GBX amounts are
// carried as GBP since prices are converted at ingestion.
func M(value decimal.Decimal, cur Currency) Money {
	return Money{value: value, cur: cur.Settlement()}
}

// currency returns the full go-money currency, never nil.
func (m Money) currency() *money.Currency {
	return money.New(0, string(m.cur)).Currency()
}

// String formats the amount with the currency's symbol, grouping and
// fraction digits.
func (m Money) String() string {
	cur := m.currency()
	units := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(units.IntPart())
}

func (m Money) Currency() Currency      { return m.cur }
func (m Money) Amount() decimal.Decimal { return m.value }
func (m Money) IsZero() bool            { return m.value.IsZero() }
func (m Money) IsNegative() bool        { return m.value.IsNegative() }

// Add sums two amounts. An empty currency is weak and takes the other side's.
func (m Money) Add(n Money) Money {
	cur := m.cur
	if cur == "" {
		cur = n.cur
	}
	return Money{value: m.value.Add(n.value), cur: cur}
}
