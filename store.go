package folio

// Store is the persistence boundary of the refresh pipeline. The web and
// admin layers own the schema and the CRUD surface; the pipeline only reads
// and writes entities through these operations and never depends on a
// particular storage engine.
//
// Lookup methods return a *NotFoundError when the entity does not exist.
// Save methods upsert by ID; AppendPrice only ever inserts, the price
// history is append-only.
type Store interface {
	Stock(id int64) (*Stock, error)
	Stocks() ([]*Stock, error)
	ActiveStocks() ([]*Stock, error)

	Account(id int64) (*Account, error)
	Accounts() ([]*Account, error)

	Holdings() ([]*Holding, error)
	HoldingsForStock(stockID int64) ([]*Holding, error)
	HoldingsForAccount(accountID int64) ([]*Holding, error)

	// Transactions returns the trade log entries for one (stock, account)
	// pair, oldest first. An empty slice is a valid answer.
	Transactions(stockID, accountID int64) ([]*Transaction, error)

	// LatestPrice returns the most recent history point for a stock, or a
	// *NotFoundError when no scrape ever succeeded.
	LatestPrice(stockID int64) (*Price, error)

	SaveStock(s *Stock) error
	SaveAccount(a *Account) error
	SaveHolding(h *Holding) error
	AppendPrice(p *Price) error
}
