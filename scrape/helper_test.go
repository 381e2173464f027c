package scrape

import "github.com/shopspring/decimal"

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ftSummaryPage mimics the quote data list of an FT summary tearsheet.
func ftSummaryPage(price string) string {
	return `<html><body>
<ul class="mod-ui-data-list">
  <li><span class="mod-ui-data-list__label">Price (GBX)</span>
      <span class="mod-ui-data-list__value">` + price + `</span></li>
  <li><span class="mod-ui-data-list__label">Today's Change</span>
      <span class="mod-ui-data-list__value">-12.00 / -0.14%</span></li>
</ul>
</body></html>`
}

// ftPerformancePage mimics the cumulative performance table of an FT
// performance tearsheet: a header row then one data row whose first cell is
// the row label and whose next six are the 5y..1m columns.
func ftPerformancePage(cols ...string) string {
	page := `<html><body>
<div class="mod-ui-table--freeze-pane__scroll-container"><table>
<tr><th></th><th>5Y</th><th>3Y</th><th>1Y</th><th>6M</th><th>3M</th><th>1M</th></tr>
<tr><td>Cumulative</td>`
	for _, c := range cols {
		page += "<td>" + c + "</td>"
	}
	return page + `</tr>
</table></div>
</body></html>`
}

func yahooQuotePage(price string) string {
	return `<html><body>
<section><span data-testid="qsp-price">` + price + `</span></section>
</body></html>`
}
