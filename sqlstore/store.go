// Package sqlstore persists the portfolio in a single SQLite file. It is
// the storage side of the folio.Store boundary: the web and admin layers
// share the same schema, the refresh pipeline only ever goes through the
// interface.
package sqlstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tkeeble/folio"
)

// Store implements folio.Store over gorm.
type Store struct {
	db *gorm.DB
}

var _ folio.Store = (*Store)(nil)

// Open opens the SQLite database at path, creating and migrating the schema
// when needed. ":memory:" gives a throwaway in-memory database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open database %q: %w", path, err)
	}
	if err := db.AutoMigrate(
		&stockModel{},
		&accountModel{},
		&transactionModel{},
		&holdingModel{},
		&priceModel{},
	); err != nil {
		return nil, fmt.Errorf("cannot migrate database %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

// stockModel is the stocks table row.
type stockModel struct {
	ID       int64  `gorm:"primaryKey"`
	Name     string `gorm:"size:50;not null"`
	Code     string `gorm:"size:20;not null"`
	Nickname string `gorm:"size:40;not null"`
	Type     string `gorm:"size:10;not null"`
	Currency string `gorm:"size:3;not null"`
	Source   string `gorm:"size:10;not null"`
	Active   bool   `gorm:"not null;index"`

	CurrentPrice decimal.Decimal `gorm:"type:decimal(12,4)"`
	PriceUpdated *time.Time

	Perf5y *decimal.Decimal `gorm:"type:decimal(8,2)"`
	Perf3y *decimal.Decimal `gorm:"type:decimal(8,2)"`
	Perf1y *decimal.Decimal `gorm:"type:decimal(8,2)"`
	Perf6m *decimal.Decimal `gorm:"type:decimal(8,2)"`
	Perf3m *decimal.Decimal `gorm:"type:decimal(8,2)"`
	Perf1m *decimal.Decimal `gorm:"type:decimal(8,2)"`
}

func (stockModel) TableName() string { return "stocks" }

type accountModel struct {
	ID    int64           `gorm:"primaryKey"`
	Name  string          `gorm:"size:50;not null"`
	Owner string          `gorm:"size:50"`
	Type  string          `gorm:"size:10;not null"`
	Value decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (accountModel) TableName() string { return "accounts" }

type transactionModel struct {
	ID        int64     `gorm:"primaryKey"`
	AccountID int64     `gorm:"not null;index"`
	StockID   int64     `gorm:"not null;index"`
	Type      string    `gorm:"size:4;not null"`
	Date      time.Time `gorm:"not null"`
	Volume    int64     `gorm:"not null"`

	Price decimal.Decimal `gorm:"type:decimal(12,4)"`
	Cost  decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (transactionModel) TableName() string { return "transactions" }

type holdingModel struct {
	ID        int64 `gorm:"primaryKey"`
	StockID   int64 `gorm:"not null;uniqueIndex:holding_stock_account,priority:1"`
	AccountID int64 `gorm:"not null;uniqueIndex:holding_stock_account,priority:2"`
	Volume    int64 `gorm:"not null"`

	BookCost     decimal.Decimal `gorm:"type:decimal(12,2)"`
	CurrentValue decimal.Decimal `gorm:"type:decimal(12,2)"`
	ValueUpdated *time.Time
}

func (holdingModel) TableName() string { return "holdings" }

type priceModel struct {
	ID      int64     `gorm:"primaryKey"`
	StockID int64     `gorm:"not null;index:price_stock_time,priority:1"`
	Time    time.Time `gorm:"not null;index:price_stock_time,priority:2"`

	Price decimal.Decimal `gorm:"type:decimal(12,4)"`
}

func (priceModel) TableName() string { return "prices" }

func toStock(m stockModel) *folio.Stock {
	return &folio.Stock{
		ID:           m.ID,
		Name:         m.Name,
		Code:         m.Code,
		Nickname:     m.Nickname,
		Type:         folio.StockType(m.Type),
		Currency:     folio.Currency(m.Currency),
		Source:       folio.Source(m.Source),
		Active:       m.Active,
		CurrentPrice: m.CurrentPrice,
		PriceUpdated: m.PriceUpdated,
		Perf5y:       m.Perf5y,
		Perf3y:       m.Perf3y,
		Perf1y:       m.Perf1y,
		Perf6m:       m.Perf6m,
		Perf3m:       m.Perf3m,
		Perf1m:       m.Perf1m,
	}
}

func fromStock(s *folio.Stock) stockModel {
	return stockModel{
		ID:           s.ID,
		Name:         s.Name,
		Code:         s.Code,
		Nickname:     s.Nickname,
		Type:         string(s.Type),
		Currency:     string(s.Currency),
		Source:       string(s.Source),
		Active:       s.Active,
		CurrentPrice: s.CurrentPrice,
		PriceUpdated: s.PriceUpdated,
		Perf5y:       s.Perf5y,
		Perf3y:       s.Perf3y,
		Perf1y:       s.Perf1y,
		Perf6m:       s.Perf6m,
		Perf3m:       s.Perf3m,
		Perf1m:       s.Perf1m,
	}
}

func toAccount(m accountModel) *folio.Account {
	return &folio.Account{
		ID:    m.ID,
		Name:  m.Name,
		Owner: m.Owner,
		Type:  folio.AccountType(m.Type),
		Value: m.Value,
	}
}

func toHolding(m holdingModel) *folio.Holding {
	return &folio.Holding{
		ID:           m.ID,
		StockID:      m.StockID,
		AccountID:    m.AccountID,
		Volume:       m.Volume,
		BookCost:     m.BookCost,
		CurrentValue: m.CurrentValue,
		ValueUpdated: m.ValueUpdated,
	}
}

func toTransaction(m transactionModel) *folio.Transaction {
	return &folio.Transaction{
		ID:        m.ID,
		AccountID: m.AccountID,
		StockID:   m.StockID,
		Type:      folio.TxType(m.Type),
		Date:      m.Date,
		Volume:    m.Volume,
		Price:     m.Price,
		Cost:      m.Cost,
	}
}

// notFound converts gorm's record-not-found into the domain error.
func notFound(err error, entity string, key int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &folio.NotFoundError{Entity: entity, Key: fmt.Sprint(key)}
	}
	return err
}

func (s *Store) Stock(id int64) (*folio.Stock, error) {
	var m stockModel
	if err := s.db.First(&m, id).Error; err != nil {
		return nil, notFound(err, "stock", id)
	}
	return toStock(m), nil
}

func (s *Store) Stocks() ([]*folio.Stock, error) {
	var ms []stockModel
	if err := s.db.Order("name").Find(&ms).Error; err != nil {
		return nil, err
	}
	stocks := make([]*folio.Stock, 0, len(ms))
	for _, m := range ms {
		stocks = append(stocks, toStock(m))
	}
	return stocks, nil
}

func (s *Store) ActiveStocks() ([]*folio.Stock, error) {
	var ms []stockModel
	if err := s.db.Where("active = ?", true).Order("name").Find(&ms).Error; err != nil {
		return nil, err
	}
	stocks := make([]*folio.Stock, 0, len(ms))
	for _, m := range ms {
		stocks = append(stocks, toStock(m))
	}
	return stocks, nil
}

func (s *Store) Account(id int64) (*folio.Account, error) {
	var m accountModel
	if err := s.db.First(&m, id).Error; err != nil {
		return nil, notFound(err, "account", id)
	}
	return toAccount(m), nil
}

func (s *Store) Accounts() ([]*folio.Account, error) {
	var ms []accountModel
	if err := s.db.Order("name").Find(&ms).Error; err != nil {
		return nil, err
	}
	accounts := make([]*folio.Account, 0, len(ms))
	for _, m := range ms {
		accounts = append(accounts, toAccount(m))
	}
	return accounts, nil
}

func (s *Store) Holdings() ([]*folio.Holding, error) {
	var ms []holdingModel
	if err := s.db.Order("stock_id").Find(&ms).Error; err != nil {
		return nil, err
	}
	return holdings(ms), nil
}

func (s *Store) HoldingsForStock(stockID int64) ([]*folio.Holding, error) {
	var ms []holdingModel
	if err := s.db.Where("stock_id = ?", stockID).Find(&ms).Error; err != nil {
		return nil, err
	}
	return holdings(ms), nil
}

func (s *Store) HoldingsForAccount(accountID int64) ([]*folio.Holding, error) {
	var ms []holdingModel
	if err := s.db.Where("account_id = ?", accountID).Find(&ms).Error; err != nil {
		return nil, err
	}
	return holdings(ms), nil
}

func holdings(ms []holdingModel) []*folio.Holding {
	hs := make([]*folio.Holding, 0, len(ms))
	for _, m := range ms {
		hs = append(hs, toHolding(m))
	}
	return hs
}

func (s *Store) Transactions(stockID, accountID int64) ([]*folio.Transaction, error) {
	var ms []transactionModel
	err := s.db.
		Where("stock_id = ? AND account_id = ?", stockID, accountID).
		Order("date").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	txs := make([]*folio.Transaction, 0, len(ms))
	for _, m := range ms {
		txs = append(txs, toTransaction(m))
	}
	return txs, nil
}

func (s *Store) LatestPrice(stockID int64) (*folio.Price, error) {
	var m priceModel
	err := s.db.Where("stock_id = ?", stockID).Order("time DESC").First(&m).Error
	if err != nil {
		return nil, notFound(err, "price for stock", stockID)
	}
	return &folio.Price{ID: m.ID, StockID: m.StockID, Time: m.Time, Price: m.Price}, nil
}

func (s *Store) SaveStock(st *folio.Stock) error {
	m := fromStock(st)
	if err := s.db.Save(&m).Error; err != nil {
		return err
	}
	st.ID = m.ID
	return nil
}

func (s *Store) SaveAccount(a *folio.Account) error {
	m := accountModel{ID: a.ID, Name: a.Name, Owner: a.Owner, Type: string(a.Type), Value: a.Value}
	if err := s.db.Save(&m).Error; err != nil {
		return err
	}
	a.ID = m.ID
	return nil
}

func (s *Store) SaveHolding(h *folio.Holding) error {
	m := holdingModel{
		ID:           h.ID,
		StockID:      h.StockID,
		AccountID:    h.AccountID,
		Volume:       h.Volume,
		BookCost:     h.BookCost,
		CurrentValue: h.CurrentValue,
		ValueUpdated: h.ValueUpdated,
	}
	if err := s.db.Save(&m).Error; err != nil {
		return err
	}
	h.ID = m.ID
	return nil
}

// AppendPrice only ever inserts, the price history is append-only.
func (s *Store) AppendPrice(p *folio.Price) error {
	m := priceModel{StockID: p.StockID, Time: p.Time, Price: p.Price}
	if err := s.db.Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

// Seed helpers for the excluded web layer's fixtures and for tests.

// AddTransaction appends one trade log entry. Transactions are immutable
// after creation, there is no update counterpart.
func (s *Store) AddTransaction(t *folio.Transaction) error {
	m := transactionModel{
		AccountID: t.AccountID,
		StockID:   t.StockID,
		Type:      string(t.Type),
		Date:      t.Date,
		Volume:    t.Volume,
		Price:     t.Price,
		Cost:      t.Cost,
	}
	if err := s.db.Create(&m).Error; err != nil {
		return err
	}
	t.ID = m.ID
	return nil
}
