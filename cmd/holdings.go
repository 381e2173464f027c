package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/tkeeble/folio"
	"github.com/tkeeble/folio/renderer"
)

type holdingsCmd struct{}

func (*holdingsCmd) Name() string { return "holdings" }
func (*holdingsCmd) Synopsis() string {
	return "recompute every holding from its transactions and the current price"
}
func (*holdingsCmd) Usage() string            { return "folio holdings\n" }
func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Println("no arguments expected")
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitFailure
	}

	holdings, err := store.Holdings()
	if err != nil {
		fmt.Println("failed to list holdings:", err)
		return subcommands.ExitFailure
	}
	if len(holdings) == 0 {
		fmt.Println("no holdings found")
		return subcommands.ExitSuccess
	}

	labels := holdingLabels(store, holdings)
	valuation := folio.NewValuation(store)

	summary := folio.RunBatch(ctx, "Holding refresh", holdings,
		func(h *folio.Holding) string { return labels[h.ID] },
		func(_ context.Context, h *folio.Holding) error {
			return valuation.RecomputeHolding(h)
		})

	display(renderer.Summary(summary))
	return subcommands.ExitSuccess
}

// holdingLabels resolves "stock in account" display names, falling back to
// raw ids when a reference is dangling; the recompute itself will report
// the dangling reference as the item's failure.
func holdingLabels(store folio.Store, holdings []*folio.Holding) map[int64]string {
	stocks := make(map[int64]string)
	if ss, err := store.Stocks(); err == nil {
		for _, s := range ss {
			stocks[s.ID] = s.Nickname
		}
	}
	accounts := make(map[int64]string)
	if as, err := store.Accounts(); err == nil {
		for _, a := range as {
			accounts[a.ID] = a.Name
		}
	}

	labels := make(map[int64]string, len(holdings))
	for _, h := range holdings {
		stock, ok := stocks[h.StockID]
		if !ok {
			stock = fmt.Sprintf("stock %d", h.StockID)
		}
		account, ok := accounts[h.AccountID]
		if !ok {
			account = fmt.Sprintf("account %d", h.AccountID)
		}
		labels[h.ID] = stock + " in " + account
	}
	return labels
}
