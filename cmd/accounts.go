package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/google/subcommands"

	"github.com/tkeeble/folio"
	"github.com/tkeeble/folio/renderer"
	"github.com/tkeeble/folio/scrape"
)

type accountsCmd struct {
	noFX bool
}

func (*accountsCmd) Name() string { return "accounts" }
func (*accountsCmd) Synopsis() string {
	return "recompute every account value from its holdings"
}
func (*accountsCmd) Usage() string { return "folio accounts [-no-fx]\n" }
func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noFX, "no-fx", false, "skip fetching the GBP/USD rate for the USD total line")
}

func (c *accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Println("no arguments expected")
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitFailure
	}

	accounts, err := store.Accounts()
	if err != nil {
		fmt.Println("failed to list accounts:", err)
		return subcommands.ExitFailure
	}
	if len(accounts) == 0 {
		fmt.Println("no accounts found")
		return subcommands.ExitSuccess
	}

	valuation := folio.NewValuation(store)

	summary := folio.RunBatch(ctx, "Account refresh", accounts,
		func(a *folio.Account) string { return a.Name },
		func(_ context.Context, a *folio.Account) error {
			return valuation.RecomputeAccount(a)
		})

	// Informational only: a missing rate degrades to omitting the USD line.
	rate := math.NaN()
	if !c.noFX {
		rate, err = scrape.LatestUSDPerGBP(new(http.Client))
		if err != nil {
			log.Printf("warning: no GBP/USD rate: %v", err)
		}
	}

	display(renderer.Summary(summary))
	display(renderer.Accounts(accounts, rate))
	return subcommands.ExitSuccess
}
