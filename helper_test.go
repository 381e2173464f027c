package folio

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory Store for tests. It hands out copies, like a
// real store would, so a stale in-memory entity is never silently shared.
type memStore struct {
	stocks   map[int64]Stock
	accounts map[int64]Account
	holdings map[int64]Holding
	txs      []Transaction
	prices   []Price

	nextID int64

	saveStockErr   error
	saveHoldingErr error
}

func newMemStore() *memStore {
	return &memStore{
		stocks:   make(map[int64]Stock),
		accounts: make(map[int64]Account),
		holdings: make(map[int64]Holding),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) putStock(s Stock) *Stock {
	if s.ID == 0 {
		s.ID = m.id()
	}
	m.stocks[s.ID] = s
	return &s
}

func (m *memStore) putAccount(a Account) *Account {
	if a.ID == 0 {
		a.ID = m.id()
	}
	m.accounts[a.ID] = a
	return &a
}

func (m *memStore) putHolding(h Holding) *Holding {
	if h.ID == 0 {
		h.ID = m.id()
	}
	m.holdings[h.ID] = h
	return &h
}

func (m *memStore) putTx(t Transaction) {
	t.ID = m.id()
	m.txs = append(m.txs, t)
}

func (m *memStore) Stock(id int64) (*Stock, error) {
	s, ok := m.stocks[id]
	if !ok {
		return nil, &NotFoundError{Entity: "stock", Key: fmt.Sprint(id)}
	}
	return &s, nil
}

func (m *memStore) Stocks() ([]*Stock, error) {
	out := make([]*Stock, 0, len(m.stocks))
	for id := range m.stocks {
		s := m.stocks[id]
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ActiveStocks() ([]*Stock, error) {
	all, _ := m.Stocks()
	out := all[:0]
	for _, s := range all {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) Account(id int64) (*Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, &NotFoundError{Entity: "account", Key: fmt.Sprint(id)}
	}
	return &a, nil
}

func (m *memStore) Accounts() ([]*Account, error) {
	out := make([]*Account, 0, len(m.accounts))
	for id := range m.accounts {
		a := m.accounts[id]
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) Holdings() ([]*Holding, error) {
	out := make([]*Holding, 0, len(m.holdings))
	for id := range m.holdings {
		h := m.holdings[id]
		out = append(out, &h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) HoldingsForStock(stockID int64) ([]*Holding, error) {
	all, _ := m.Holdings()
	out := all[:0]
	for _, h := range all {
		if h.StockID == stockID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memStore) HoldingsForAccount(accountID int64) ([]*Holding, error) {
	all, _ := m.Holdings()
	out := all[:0]
	for _, h := range all {
		if h.AccountID == accountID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memStore) Transactions(stockID, accountID int64) ([]*Transaction, error) {
	var out []*Transaction
	for i := range m.txs {
		t := m.txs[i]
		if t.StockID == stockID && t.AccountID == accountID {
			out = append(out, &t)
		}
	}
	return out, nil
}

func (m *memStore) LatestPrice(stockID int64) (*Price, error) {
	var latest *Price
	for i := range m.prices {
		p := m.prices[i]
		if p.StockID != stockID {
			continue
		}
		if latest == nil || p.Time.After(latest.Time) {
			latest = &p
		}
	}
	if latest == nil {
		return nil, &NotFoundError{Entity: "price for stock", Key: fmt.Sprint(stockID)}
	}
	return latest, nil
}

func (m *memStore) SaveStock(s *Stock) error {
	if m.saveStockErr != nil {
		return m.saveStockErr
	}
	if s.ID == 0 {
		s.ID = m.id()
	}
	m.stocks[s.ID] = *s
	return nil
}

func (m *memStore) SaveAccount(a *Account) error {
	if a.ID == 0 {
		a.ID = m.id()
	}
	m.accounts[a.ID] = *a
	return nil
}

func (m *memStore) SaveHolding(h *Holding) error {
	if m.saveHoldingErr != nil {
		return m.saveHoldingErr
	}
	if h.ID == 0 {
		h.ID = m.id()
	}
	m.holdings[h.ID] = *h
	return nil
}

func (m *memStore) AppendPrice(p *Price) error {
	p.ID = m.id()
	m.prices = append(m.prices, *p)
	return nil
}

// fakeSource is a canned PriceSource.
type fakeSource struct {
	price    decimal.Decimal
	priceErr error

	perf    map[Metric]decimal.Decimal
	perfErr error

	priceCalls int
	perfCalls  int
}

func (f *fakeSource) Price(_ context.Context, _ *Stock) (decimal.Decimal, error) {
	f.priceCalls++
	if f.priceErr != nil {
		return decimal.Decimal{}, f.priceErr
	}
	return f.price, nil
}

func (f *fakeSource) Performance(_ context.Context, _ *Stock) (map[Metric]decimal.Decimal, error) {
	f.perfCalls++
	if f.perfErr != nil {
		return nil, f.perfErr
	}
	return f.perf, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
