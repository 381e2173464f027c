// Package folio tracks a personal investment portfolio: accounts, stock
// holdings and the buy/sell transaction log, with prices refreshed by
// scraping two upstream financial sites.
//
// The package owns the refresh pipeline and the valuation cascade. A scraped
// price flows Fetch -> Parse -> Normalize -> persisted Price, then the
// dependent values are recomputed in order: Stock price, Holding value,
// Account value. Transactions and the current price are the sources of
// truth; holdings and account values are derived caches that can be rebuilt
// from them at any time.
//
// Persistence is behind the Store interface, upstream sites are behind the
// PriceSource interface; the scrape and sqlstore packages provide the real
// implementations and the cmd package wires them into a small CLI.
package folio
