package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/tkeeble/folio"
	"github.com/tkeeble/folio/renderer"
	"github.com/tkeeble/folio/scrape"
)

type pricesCmd struct {
	perf bool
}

func (*pricesCmd) Name() string { return "prices" }
func (*pricesCmd) Synopsis() string {
	return "scrape current prices for all active stocks and refresh their holdings"
}
func (*pricesCmd) Usage() string { return "folio prices [-perf]\n" }
func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.perf, "perf", false, "also refresh fund and ETF performance figures")
}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Println("no arguments expected")
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitFailure
	}

	stocks, err := store.ActiveStocks()
	if err != nil {
		fmt.Println("failed to list active stocks:", err)
		return subcommands.ExitFailure
	}
	if len(stocks) == 0 {
		fmt.Println("no active stocks found")
		return subcommands.ExitSuccess
	}

	refresher := folio.NewRefresher(store, scrape.NewClient())

	summary := folio.RunBatch(ctx, "Price refresh", stocks,
		func(s *folio.Stock) string { return s.Nickname },
		func(ctx context.Context, s *folio.Stock) error {
			err := refresher.RefreshPrice(ctx, s)
			if c.perf {
				err = errors.Join(err, refresher.RefreshPerformance(ctx, s))
			}
			return err
		})

	display(renderer.Summary(summary))

	// Per-item failures are reported in the summary, they do not fail the
	// process.
	return subcommands.ExitSuccess
}
