package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	"github.com/tkeeble/folio/renderer"
)

type stocksCmd struct{}

func (*stocksCmd) Name() string             { return "stocks" }
func (*stocksCmd) Synopsis() string         { return "list stocks with their last price and its age" }
func (*stocksCmd) Usage() string            { return "folio stocks\n" }
func (*stocksCmd) SetFlags(f *flag.FlagSet) {}

func (c *stocksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Println("no arguments expected")
		return subcommands.ExitUsageError
	}

	store, err := openStore()
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitFailure
	}

	stocks, err := store.Stocks()
	if err != nil {
		fmt.Println("failed to list stocks:", err)
		return subcommands.ExitFailure
	}
	if len(stocks) == 0 {
		fmt.Println("no stocks found")
		return subcommands.ExitSuccess
	}

	display(renderer.Stocks(stocks, time.Now()))
	return subcommands.ExitSuccess
}
