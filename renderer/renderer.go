// Package renderer turns batch results into markdown. The cmd layer decides
// how to display the markdown (plain or through a terminal renderer); this
// package only builds the text.
package renderer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkeeble/folio"
)

// Summary renders the outcome of one batch run: the tally first, then every
// failed item with its reason. No failure is ever silently dropped.
func Summary(s folio.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.Name)
	fmt.Fprintf(&b, "Updated %d/%d.\n", s.Succeeded, s.Total)
	if n := s.Skipped(); n > 0 {
		fmt.Fprintf(&b, "\nCancelled with %d item(s) not dispatched.\n", n)
	}

	if len(s.Failed) > 0 {
		fmt.Fprintf(&b, "\n## Failed (%d)\n\n", len(s.Failed))
		b.WriteString("| Item | Reason |\n")
		b.WriteString("|---|---|\n")
		for _, f := range s.Failed {
			fmt.Fprintf(&b, "| %s | %s |\n", cell(f.Item), cell(f.Reason))
		}
	}

	return b.String()
}

// Accounts renders every account with its formatted value and a grand
// total. When usdPerGBP is a real rate, a USD equivalent of the total is
// added; valuation itself never converts, this line is informational only.
func Accounts(accounts []*folio.Account, usdPerGBP float64) string {
	var b strings.Builder

	b.WriteString("# Account values\n\n")
	b.WriteString("| Account | Owner | Type | Value |\n")
	b.WriteString("|---|---|---|---|\n")

	total := decimal.Zero
	for _, a := range accounts {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			cell(a.Name), cell(a.Owner), a.Type, folio.M(a.Value, folio.GBP))
		total = total.Add(a.Value)
	}

	fmt.Fprintf(&b, "\nTotal: %s", folio.M(total, folio.GBP))
	if !math.IsNaN(usdPerGBP) && usdPerGBP > 0 {
		usd := total.Mul(decimal.NewFromFloat(usdPerGBP))
		fmt.Fprintf(&b, " (about %s)", folio.M(usd, folio.USD))
	}
	b.WriteString("\n")

	return b.String()
}

// Stocks renders the stock list with each instrument's last price and its
// age, flagging stocks that never scraped successfully.
func Stocks(stocks []*folio.Stock, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Stocks\n\n")
	b.WriteString("| Stock | Code | Type | Source | Price | Updated |\n")
	b.WriteString("|---|---|---|---|---|---|\n")

	for _, s := range stocks {
		price := "-"
		updated := "never"
		if s.PriceUpdated != nil {
			price = folio.M(s.CurrentPrice, s.Currency).String()
			updated = age(now.Sub(*s.PriceUpdated))
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			cell(s.Nickname), cell(s.Code), s.Type, s.Source, price, updated)
	}

	return b.String()
}

// age formats a duration in the coarsest useful unit.
func age(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// cell escapes the table separator so a reason string cannot break the row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
