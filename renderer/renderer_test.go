package renderer

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkeeble/folio"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSummary(t *testing.T) {
	s := folio.Summary{
		Name:      "Price refresh",
		Total:     3,
		Succeeded: 2,
		Failed:    []folio.Failure{{Item: "VWRL", Reason: "http 403 | forbidden"}},
	}
	got := Summary(s)

	for _, want := range []string{
		"# Price refresh",
		"Updated 2/3.",
		"## Failed (1)",
		"| VWRL | http 403 \\| forbidden |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Cancelled") {
		t.Errorf("Summary() mentions cancellation for a completed batch:\n%s", got)
	}
}

func TestSummary_Cancelled(t *testing.T) {
	s := folio.Summary{Name: "Price refresh", Total: 5, Succeeded: 2}
	got := Summary(s)
	if !strings.Contains(got, "Cancelled with 3 item(s) not dispatched.") {
		t.Errorf("Summary() missing the cancellation note:\n%s", got)
	}
}

func TestSummary_AllOk(t *testing.T) {
	got := Summary(folio.Summary{Name: "Price refresh", Total: 2, Succeeded: 2})
	if strings.Contains(got, "Failed") {
		t.Errorf("Summary() has a Failed section with nothing failed:\n%s", got)
	}
}

func TestAccounts(t *testing.T) {
	accounts := []*folio.Account{
		{Name: "isa", Owner: "tk", Type: folio.ISA, Value: dec("6500.00")},
		{Name: "sipp", Owner: "tk", Type: folio.Pension, Value: dec("120.50")},
	}
	got := Accounts(accounts, 1.25)

	for _, want := range []string{
		"| isa | tk | isa | £6,500.00 |",
		"Total: £6,620.50",
		"(about $8,275.63)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Accounts() missing %q in:\n%s", want, got)
		}
	}
}

func TestAccounts_NoRate(t *testing.T) {
	got := Accounts([]*folio.Account{{Name: "isa", Value: dec("100")}}, math.NaN())
	if strings.Contains(got, "about") {
		t.Errorf("Accounts() has a USD line without a rate:\n%s", got)
	}
	if !strings.Contains(got, "Total: £100.00") {
		t.Errorf("Accounts() missing the total:\n%s", got)
	}
}

func TestStocks(t *testing.T) {
	updated := time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)
	now := updated.Add(3 * time.Hour)

	stocks := []*folio.Stock{
		{Nickname: "VWRL", Code: "VWRL:LSE:GBX", Type: folio.ETF, Source: folio.SourceFT,
			Currency: folio.GBX, CurrentPrice: dec("87.855"), PriceUpdated: &updated},
		{Nickname: "manual", Code: folio.NoCode, Type: folio.Fund, Source: folio.SourceFT},
	}
	got := Stocks(stocks, now)

	if !strings.Contains(got, "| VWRL | VWRL:LSE:GBX | etf | ft | £87.86 | 3h ago |") {
		t.Errorf("Stocks() missing the priced row in:\n%s", got)
	}
	if !strings.Contains(got, "| - | never |") {
		t.Errorf("Stocks() missing the never-scraped row in:\n%s", got)
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{90 * time.Minute, "1h ago"},
		{36 * time.Hour, "36h ago"},
		{72 * time.Hour, "3d ago"},
	}
	for _, tt := range tests {
		if got := age(tt.d); got != tt.want {
			t.Errorf("age(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
