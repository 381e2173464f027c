// Package cmd implements the CLI application driving the refresh pipeline.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/tkeeble/folio/sqlstore"
)

// Register the subcommands. A main package calls Register() and then
// Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&pricesCmd{}, "refresh")
	c.Register(&holdingsCmd{}, "refresh")
	c.Register(&accountsCmd{}, "refresh")

	c.Register(&stocksCmd{}, "reports")
}

// As a CLI application it has a very short lived lifecycle, so it is ok to
// use global variables.

var dbPath = flag.String("db", defaultDBPath(), "path to the SQLite database file")

func defaultDBPath() string {
	if v := os.Getenv("FOLIO_DB"); v != "" {
		return v
	}
	return "folio.db"
}

// openStore is the central function to open the portfolio database.
func openStore() (*sqlstore.Store, error) {
	return sqlstore.Open(*dbPath)
}

// display renders markdown for the terminal, falling back to the raw text
// when the renderer cannot run.
func display(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
